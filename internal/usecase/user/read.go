package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/user"
	"github.com/cema-health/program-manager/internal/dto"
)

type ViewUser struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewViewUser(repo domain.Repository, az *authz.Authorizer) *ViewUser {
	return &ViewUser{repo: repo, authz: az}
}

func (uc *ViewUser) Execute(ctx context.Context, p authz.Principal, id uint) (*dto.UserView, error) {
	if err := uc.authz.Require(p, authz.ResourceUser, authz.ActionRead); err != nil {
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound()
		}
		return nil, err
	}

	out := dto.NewUserView(*u)
	return &out, nil
}

type ListUsers struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewListUsers(repo domain.Repository, az *authz.Authorizer) *ListUsers {
	return &ListUsers{repo: repo, authz: az}
}

func (uc *ListUsers) Execute(ctx context.Context, p authz.Principal) ([]dto.UserView, error) {
	if err := uc.authz.Require(p, authz.ResourceUser, authz.ActionList); err != nil {
		return nil, err
	}

	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserViews(users), nil
}

// Me returns the caller's own account. Any authenticated role may call it.
type Me struct {
	repo domain.Repository
}

func NewMe(repo domain.Repository) *Me {
	return &Me{repo: repo}
}

func (uc *Me) Execute(ctx context.Context, p authz.Principal) (*dto.UserView, error) {
	u, err := uc.repo.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound()
		}
		return nil, err
	}

	out := dto.NewUserView(*u)
	return &out, nil
}
