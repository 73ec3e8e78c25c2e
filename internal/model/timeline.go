package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timeline action labels. One event is appended per state-affecting action;
// the table is append-only.
const (
	ActionComplaintSubmitted = "Complaint Submitted"
	ActionCommentAdded       = "Comment Added"
	ActionAdminResponded     = "Admin Responded"
	ActionStatusChanged      = "Status Changed"
	ActionComplaintEscalated = "Complaint Escalated"
	ActionAutoEscalated      = "Complaint Auto-Escalated"
)

type TimelineEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ComplaintID uuid.UUID `gorm:"type:uuid;not null" json:"complaint_id"`
	Action      string    `gorm:"type:varchar(64);not null" json:"action"`
	Details     string    `gorm:"type:text" json:"details"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TimelineEvent) TableName() string {
	return "complaint_timeline_events"
}

func (e *TimelineEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
