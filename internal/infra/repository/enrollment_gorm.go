package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/cema-health/program-manager/internal/domain/enrollment"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

type EnrollmentGormRepository struct {
	db *gorm.DB
}

func NewEnrollmentGormRepository(db *gorm.DB) *EnrollmentGormRepository {
	return &EnrollmentGormRepository{db: db}
}

var _ domain.Repository = (*EnrollmentGormRepository)(nil)

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *EnrollmentGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, clientID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *EnrollmentGormRepository) GetProgramsByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Program, error) {

	var programs []models.Program
	if len(ids) == 0 {
		return programs, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *EnrollmentGormRepository) ActiveProgramIDs(
	ctx context.Context,
	clientID uint,
	programIDs []uint,
) ([]uint, error) {

	var ids []uint
	if len(programIDs) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where(
			"client_id = ? AND program_id IN ? AND status_id = ?",
			clientID, programIDs, status.Enrolled.Uint(),
		).
		Distinct().
		Pluck("program_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *EnrollmentGormRepository) CreateEnrollments(
	ctx context.Context,
	rows []models.Enrollment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.Conflict(
			"enrollment_conflict",
			"Client is already enrolled in one of the requested programs.",
			nil,
		)
	}
	if err != nil {
		return fmt.Errorf("create enrollments: %w", err)
	}
	return nil
}

func (r *EnrollmentGormRepository) GetEnrollment(
	ctx context.Context,
	id uint,
) (*models.Enrollment, error) {

	var e models.Enrollment
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentGormRepository) TransitionStatus(
	ctx context.Context,
	id uint,
	from status.ID,
	to status.ID,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ? AND status_id = ?", id, from.Uint()).
		Update("status_id", to.Uint())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *EnrollmentGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Enrollment, error) {

	var rows []models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Program").
		Preload("Status").
		Where("client_id = ?", clientID).
		Order("enrollment_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
