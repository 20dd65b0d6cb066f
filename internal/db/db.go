package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/config"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/models"
)

func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMin) * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the schema, seeds the status table and installs the index
// that allows one active enrollment per client and program.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Program{},
		&models.Client{},
		&models.Enrollment{},
		&models.Appointment{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	seed := status.Seed()
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
	}).Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed status: %w", err)
	}

	if err := db.Exec(fmt.Sprintf(`
        CREATE UNIQUE INDEX IF NOT EXISTS ux_enrollments_active
        ON enrollments (client_id, program_id)
        WHERE status_id = %d
    `, status.Enrolled)).Error; err != nil {
		return fmt.Errorf("failed to create enrollment index: %w", err)
	}

	return nil
}

// EnsureAdmin creates the bootstrap admin when no admin exists. It reports
// whether a user was created.
func EnsureAdmin(
	ctx context.Context,
	db *gorm.DB,
	cfg config.BootstrapConfig,
	log *slog.Logger,
) (bool, error) {

	var count int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(authz.RoleAdmin)).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		Phone:        cfg.AdminPhone,
		PasswordHash: string(hash),
		Role:         string(authz.RoleAdmin),
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	log.WarnContext(ctx, "bootstrap admin created; change its password",
		slog.String("username", admin.Username),
	)
	return true, nil
}
