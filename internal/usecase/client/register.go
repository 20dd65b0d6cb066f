package client

import (
	"context"
	"strings"
	"time"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/client"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
	"github.com/cema-health/program-manager/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterClientInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	Phone       string
	Email       string
}

// ======================================================
// USE CASE
// ======================================================

type RegisterClient struct {
	repo     domain.Repository
	authz    *authz.Authorizer
	audit    audit.Recorder
	clock    timezone.Clock
	contacts *validators.Contacts
}

func NewRegisterClient(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	clock timezone.Clock,
	contacts *validators.Contacts,
) *RegisterClient {
	return &RegisterClient{
		repo:     repo,
		authz:    az,
		audit:    rec,
		clock:    clock,
		contacts: contacts,
	}
}

func (uc *RegisterClient) Execute(
	ctx context.Context,
	p authz.Principal,
	in RegisterClientInput,
) (*models.Client, error) {

	if err := uc.authz.Require(p, authz.ResourceClient, authz.ActionCreate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Validation
	// --------------------------------------------------
	name := domain.FullName(in.FirstName, in.LastName)
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, httperr.Validation("name_required", "First and last name are required.")
	}
	if len(name) > 100 {
		return nil, httperr.Validation("name_too_long", "Full name must be at most 100 characters.")
	}

	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	if gender != "male" && gender != "female" {
		return nil, httperr.Validation("invalid_gender", "Gender must be male or female.")
	}

	if in.DateOfBirth.IsZero() || in.DateOfBirth.After(uc.clock.Now()) {
		return nil, httperr.Validation("invalid_date_of_birth", "Date of birth cannot be in the future.")
	}

	phone, err := uc.contacts.NormalizePhone(in.Phone)
	if err != nil {
		return nil, httperr.Validation("invalid_phone", "Phone number is not valid.")
	}

	email := strings.TrimSpace(in.Email)
	if err := uc.contacts.ValidateEmail(email); err != nil {
		return nil, httperr.Validation("invalid_email", "Email address is not valid.")
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	c := &models.Client{
		FullName:       name,
		DateOfBirth:    in.DateOfBirth,
		Gender:         gender,
		Phone:          phone,
		Email:          email,
		RegisteredAt:   uc.clock.Now(),
		RegisteredByID: &p.UserID,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "client_registered",
		Entity:   "client",
		EntityID: audit.Ptr(c.ID),
	})

	return c, nil
}
