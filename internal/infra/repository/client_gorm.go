package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/cema-health/program-manager/internal/domain/client"
	"github.com/cema-health/program-manager/internal/models"
)

const dateLayout = "2006-01-02"

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

var _ domain.Repository = (*ClientGormRepository)(nil)

// likePattern escapes LIKE wildcards and lowercases the term.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func orderEnrollments(db *gorm.DB) *gorm.DB {
	return db.Order("enrollments.start_date DESC, enrollments.id DESC")
}

// --------------------------------------------------
// Search
// --------------------------------------------------

func (r *ClientGormRepository) Search(
	ctx context.Context,
	f domain.SearchFilter,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Model(&models.Client{})

	if f.Name != "" {
		q = q.Where("LOWER(clients.full_name) LIKE ?", likePattern(f.Name))
	}

	// EXISTS keeps one row per client however many enrollments match.
	if f.ProgramID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM enrollments e WHERE e.client_id = clients.id AND e.program_id = ?)",
			*f.ProgramID,
		)
	}

	if f.DOBFrom != nil && f.DOBTo != nil {
		q = q.Where(
			"clients.date_of_birth BETWEEN ? AND ?",
			f.DOBFrom.Format(dateLayout),
			f.DOBTo.Format(dateLayout),
		)
	}

	var clients []models.Client
	if err := q.
		Preload("RegisteredBy").
		Preload("Enrollments", orderEnrollments).
		Preload("Enrollments.Program").
		Preload("Enrollments.Status").
		Order("clients.full_name ASC, clients.id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

// QuickSearch matches full_name only and returns every hit.
func (r *ClientGormRepository) QuickSearch(
	ctx context.Context,
	q string,
) ([]models.Client, error) {

	pattern := likePattern(strings.TrimSpace(q))

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Select("id", "full_name", "email").
		Where("LOWER(full_name) LIKE ?", pattern).
		Order("full_name ASC, id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *ClientGormRepository) GetProfile(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Preload("RegisteredBy").
		Preload("Enrollments", orderEnrollments).
		Preload("Enrollments.Program").
		Preload("Enrollments.Status").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointments.appointment_date DESC, appointments.id DESC")
		}).
		Preload("Appointments.Status").
		Preload("Appointments.Doctor").
		Preload("Appointments.Program").
		First(&c, id).Error; err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *ClientGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}
