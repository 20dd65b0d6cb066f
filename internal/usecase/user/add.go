package user

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/user"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
	"github.com/cema-health/program-manager/internal/validators"
)

const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
	MinPasswordLength = 6
)

// ======================================================
// INPUT
// ======================================================

// ClientProfileInput is required when the new user has the client role.
type ClientProfileInput struct {
	FullName    string
	DateOfBirth time.Time
	Gender      string
}

type AddUserInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Role     string

	Client *ClientProfileInput
}

// ======================================================
// USE CASE
// ======================================================

type AddUser struct {
	repo     domain.Repository
	authz    *authz.Authorizer
	audit    audit.Recorder
	clock    timezone.Clock
	contacts *validators.Contacts
}

func NewAddUser(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	clock timezone.Clock,
	contacts *validators.Contacts,
) *AddUser {
	return &AddUser{
		repo:     repo,
		authz:    az,
		audit:    rec,
		clock:    clock,
		contacts: contacts,
	}
}

func (uc *AddUser) Execute(
	ctx context.Context,
	p authz.Principal,
	in AddUserInput,
) (*models.User, error) {

	if err := uc.authz.Require(p, authz.ResourceUser, authz.ActionCreate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1. Validation
	// --------------------------------------------------
	username := strings.TrimSpace(in.Username)
	if l := len(username); l < MinUsernameLength || l > MaxUsernameLength {
		return nil, httperr.Validation("invalid_username", "Username must be 4 to 20 characters.")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, httperr.Validation("weak_password", "Password must be at least 6 characters.")
	}

	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, httperr.Validation("invalid_role", "Role must be admin, doctor or client.")
	}

	email := strings.TrimSpace(in.Email)
	if err := uc.contacts.ValidateEmail(email); err != nil {
		return nil, httperr.Validation("invalid_email", "Email address is not valid.")
	}

	phone, err := uc.contacts.NormalizePhone(in.Phone)
	if err != nil {
		return nil, httperr.Validation("invalid_phone", "Phone number is not valid.")
	}

	var profile *models.Client
	if role == authz.RoleClient {
		profile, err = uc.clientProfile(in.Client, username, phone, email, p.UserID)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 2. Uniqueness
	// --------------------------------------------------
	exists, err := uc.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.UsernameTaken()
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         string(role),
	}

	if err := uc.repo.Create(ctx, u, profile); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "user_created",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
		Metadata: map[string]any{"role": u.Role},
	})

	return u, nil
}

func (uc *AddUser) clientProfile(
	in *ClientProfileInput,
	username, phone, email string,
	registeredBy uint,
) (*models.Client, error) {

	if in == nil || in.DateOfBirth.IsZero() {
		return nil, httperr.Validation(
			"client_profile_required",
			"Date of birth is required for client accounts.",
		)
	}
	if in.DateOfBirth.After(uc.clock.Now()) {
		return nil, httperr.Validation("invalid_date_of_birth", "Date of birth cannot be in the future.")
	}

	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	if gender != "" && gender != "male" && gender != "female" {
		return nil, httperr.Validation("invalid_gender", "Gender must be male or female.")
	}

	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = username
	}

	return &models.Client{
		FullName:       name,
		DateOfBirth:    in.DateOfBirth,
		Gender:         gender,
		Phone:          phone,
		Email:          email,
		RegisteredAt:   uc.clock.Now(),
		RegisteredByID: &registeredBy,
	}, nil
}
