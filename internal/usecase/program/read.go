package program

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/program"
	"github.com/cema-health/program-manager/internal/dto"
)

type ListPrograms struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewListPrograms(repo domain.Repository, az *authz.Authorizer) *ListPrograms {
	return &ListPrograms{repo: repo, authz: az}
}

func (uc *ListPrograms) Execute(ctx context.Context, p authz.Principal) ([]dto.ProgramItem, error) {
	if err := uc.authz.Require(p, authz.ResourceProgram, authz.ActionList); err != nil {
		return nil, err
	}

	programs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramItems(programs), nil
}

type GetProgram struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewGetProgram(repo domain.Repository, az *authz.Authorizer) *GetProgram {
	return &GetProgram{repo: repo, authz: az}
}

func (uc *GetProgram) Execute(ctx context.Context, p authz.Principal, id uint) (*dto.ProgramDetail, error) {
	if err := uc.authz.Require(p, authz.ResourceProgram, authz.ActionRead); err != nil {
		return nil, err
	}

	prog, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound()
		}
		return nil, err
	}

	out := dto.NewProgramDetail(*prog)
	return &out, nil
}
