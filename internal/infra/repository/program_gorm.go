package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/cema-health/program-manager/internal/domain/program"
	"github.com/cema-health/program-manager/internal/models"
)

type ProgramGormRepository struct {
	db *gorm.DB
}

func NewProgramGormRepository(db *gorm.DB) *ProgramGormRepository {
	return &ProgramGormRepository{db: db}
}

var _ domain.Repository = (*ProgramGormRepository)(nil)

func (r *ProgramGormRepository) ExistsByName(
	ctx context.Context,
	name string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Program{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProgramGormRepository) Create(ctx context.Context, p *models.Program) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProgramGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Program, error) {

	var p models.Program
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgramGormRepository) Update(ctx context.Context, p *models.Program) error {
	return r.db.WithContext(ctx).
		Model(p).
		Select("name", "description", "start_date", "duration").
		Updates(p).Error
}

func (r *ProgramGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Program{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})

	return deleted, err
}

func (r *ProgramGormRepository) List(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	if err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}
