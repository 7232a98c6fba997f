package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Subject string `gorm:"size:150;index" json:"subject"`
	Action  string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *int   `json:"entity_id"`
	Outcome  string `gorm:"size:30" json:"outcome"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
