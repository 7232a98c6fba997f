package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
)

const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionLogin    = "login"
	ActionLogout   = "logout"
	ActionRegister = "register"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Logger persists events. A Logger without a database stores nothing and
// lists nothing.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Enabled() bool {
	return l != nil && l.db != nil
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	if !l.Enabled() {
		return nil
	}

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Subject:  ev.Subject,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Outcome:  ev.Outcome,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

type Filter struct {
	Entity string
	Action string
	Page   int
	Limit  int
}

func (f Filter) normalized() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = DefaultPageSize
	}
	return f
}

type Page struct {
	Filter
	Total int64
	Logs  []models.AuditLog
}

func (p Page) HasNext() bool {
	return int64(p.Page*p.Limit) < p.Total
}

// List returns the newest rows first.
func (l *Logger) List(ctx context.Context, f Filter) (Page, error) {
	f = f.normalized()
	page := Page{Filter: f}
	if !l.Enabled() {
		return page, nil
	}

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}

	if err := q.Count(&page.Total).Error; err != nil {
		return page, err
	}

	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&page.Logs).Error; err != nil {
		return page, err
	}
	return page, nil
}
