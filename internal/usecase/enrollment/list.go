package enrollment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/enrollment"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
)

type ListClientEnrollments struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewListClientEnrollments(repo domain.Repository, az *authz.Authorizer) *ListClientEnrollments {
	return &ListClientEnrollments{repo: repo, authz: az}
}

func (uc *ListClientEnrollments) Execute(
	ctx context.Context,
	p authz.Principal,
	clientID uint,
) ([]dto.EnrollmentListItem, error) {

	if err := uc.authz.RequireClientAccess(p, clientID); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("client_not_found", "Client not found.")
		}
		return nil, err
	}

	rows, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentListItems(rows), nil
}
