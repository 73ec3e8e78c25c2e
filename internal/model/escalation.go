package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Escalation marks that a complaint was flagged for elevated handling. A
// complaint can accumulate several of these over its lifetime; rows are never
// mutated or deduplicated.
type Escalation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ComplaintID     uuid.UUID `gorm:"type:uuid;not null" json:"complaint_id"`
	EscalationLevel int       `gorm:"not null;default:1" json:"escalation_level"`
	EscalatedAt     time.Time `gorm:"autoCreateTime" json:"escalated_at"`
}

func (Escalation) TableName() string {
	return "complaint_escalations"
}

func (e *Escalation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
