package client

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/client"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/timezone"
)

type GetProfile struct {
	repo  domain.Repository
	authz *authz.Authorizer
	clock timezone.Clock
}

func NewGetProfile(repo domain.Repository, az *authz.Authorizer, clock timezone.Clock) *GetProfile {
	return &GetProfile{repo: repo, authz: az, clock: clock}
}

func (uc *GetProfile) Execute(
	ctx context.Context,
	p authz.Principal,
	clientID uint,
) (*dto.Profile, error) {

	if err := uc.authz.RequireClientAccess(p, clientID); err != nil {
		return nil, err
	}

	c, err := uc.repo.GetProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("client_not_found", "Client not found.")
		}
		return nil, err
	}

	profile := dto.NewProfile(*c, uc.clock.Now())
	return &profile, nil
}
