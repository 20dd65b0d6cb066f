package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/user"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

var _ domain.Repository = (*UserGormRepository)(nil)

func (r *UserGormRepository) ExistsByUsername(
	ctx context.Context,
	username string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Create (user + optional client profile)
// --------------------------------------------------

func (r *UserGormRepository) Create(
	ctx context.Context,
	u *models.User,
	profile *models.Client,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if profile != nil {
			// The id must be free in both tables, so take the next user id
			// or the first id past every existing client, whichever is higher.
			var id uint
			if err := tx.Raw(`
                SELECT GREATEST(
                    nextval(pg_get_serial_sequence('users', 'id')),
                    (SELECT COALESCE(MAX(id), 0) + 1 FROM clients)
                )
            `).Scan(&id).Error; err != nil {
				return err
			}
			u.ID = id
		}

		if err := tx.Create(u).Error; err != nil {
			if name, ok := httperr.UniqueConstraint(err); ok {
				if strings.Contains(name, "username") {
					return domain.UsernameTaken()
				}
				return clientIDTaken()
			}
			return err
		}

		if profile == nil {
			return nil
		}

		profile.ID = u.ID
		if err := tx.Create(profile).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return clientIDTaken()
			}
			return err
		}

		// Explicit ids do not advance the serials; keep both ahead of them.
		if err := tx.Exec(
			"SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))",
		).Error; err != nil {
			return err
		}
		return tx.Exec(
			"SELECT setval(pg_get_serial_sequence('clients', 'id'), (SELECT MAX(id) FROM clients))",
		).Error
	})
}

func clientIDTaken() error {
	return httperr.Conflict(
		"client_id_taken",
		"A client record already uses this account's id.",
		nil,
	)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func (r *UserGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound()
			}
			return err
		}

		if authz.Role(u.Role) == authz.RoleAdmin {
			// FOR UPDATE cannot be combined with COUNT, so lock the rows and
			// count them here.
			var adminIDs []uint
			if err := tx.Model(&models.User{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("role = ?", string(authz.RoleAdmin)).
				Pluck("id", &adminIDs).Error; err != nil {
				return err
			}
			if err := domain.CanDelete(&u, int64(len(adminIDs))); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ?", id).
			Update("doctor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Client{}).
			Where("registered_by_id = ?", id).
			Update("registered_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		if authz.Role(u.Role) == authz.RoleClient {
			if err := deleteClientProfile(tx, id); err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

func deleteClientProfile(tx *gorm.DB, clientID uint) error {
	if err := tx.Where("client_id = ?", clientID).Delete(&models.Appointment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("client_id = ?", clientID).Delete(&models.Enrollment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Client{}, clientID).Error
}

func (r *UserGormRepository) TouchLastLogin(
	ctx context.Context,
	id uint,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
