package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/models"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder is what use cases depend on. Recording never fails a request.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

type Logger struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

var _ Recorder = (*Logger)(nil)

func (l *Logger) Record(ctx context.Context, ev Event) {
	if err := l.Log(ctx, ev); err != nil {
		l.log.WarnContext(ctx, "audit write failed",
			slog.String("action", ev.Action),
			slog.String("entity", ev.Entity),
			slog.Any("error", err),
		)
	}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// --------------------------------------------------
// Query
// --------------------------------------------------

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time

	Limit  int
	Offset int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var rows []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}

// Ptr is a helper for the optional id fields.
func Ptr(id uint) *uint { return &id }
