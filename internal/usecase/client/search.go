package client

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/client"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/timezone"
)


type SearchInput struct {
	Name    string
	Program string
	Age     string
}

type SearchClients struct {
	repo    domain.Repository
	authz   *authz.Authorizer
	clock   timezone.Clock
	ageMode domain.AgeMode
	log     *slog.Logger
}

func NewSearchClients(
	repo domain.Repository,
	az *authz.Authorizer,
	clock timezone.Clock,
	ageMode domain.AgeMode,
	log *slog.Logger,
) *SearchClients {
	return &SearchClients{
		repo:    repo,
		authz:   az,
		clock:   clock,
		ageMode: ageMode,
		log:     log,
	}
}

func (uc *SearchClients) Execute(
	ctx context.Context,
	p authz.Principal,
	in SearchInput,
) ([]dto.ClientSummary, error) {

	if err := uc.authz.Require(p, authz.ResourceClient, authz.ActionSearch); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	f := domain.NewSearchFilter(in.Name, in.Program, in.Age, now, uc.ageMode)

	clients, err := uc.repo.Search(ctx, f)
	if err != nil {
		uc.log.ErrorContext(ctx, "client search failed", slog.Any("error", err))
		return nil, httperr.Internal("search_failed", "An error occurred while searching.")
	}

	return dto.NewClientSummaries(clients, now), nil
}

// ======================================================
// QUICK SEARCH
// ======================================================

type QuickSearch struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewQuickSearch(repo domain.Repository, az *authz.Authorizer) *QuickSearch {
	return &QuickSearch{repo: repo, authz: az}
}

// Execute returns an empty list for a blank query.
func (uc *QuickSearch) Execute(
	ctx context.Context,
	p authz.Principal,
	q string,
) ([]dto.QuickSearchItem, error) {

	if err := uc.authz.Require(p, authz.ResourceClient, authz.ActionSearch); err != nil {
		return nil, err
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return []dto.QuickSearchItem{}, nil
	}

	clients, err := uc.repo.QuickSearch(ctx, q)
	if err != nil {
		return nil, err
	}
	return dto.NewQuickSearchItems(clients), nil
}
