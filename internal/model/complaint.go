package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
	ComplaintStatusEscalated  ComplaintStatus = "Escalated"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusEscalated:
		return true
	}
	return false
}

type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "Low"
	ComplaintPriorityMedium ComplaintPriority = "Medium"
	ComplaintPriorityHigh   ComplaintPriority = "High"
	ComplaintPriorityUrgent ComplaintPriority = "Urgent"
)

func (p ComplaintPriority) Valid() bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh, ComplaintPriorityUrgent:
		return true
	}
	return false
}

// Complaint is the aggregate root. Title, category, description, priority and
// attachment are immutable after creation; status is the only field the
// lifecycle operations rewrite.
type Complaint struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title          string            `gorm:"type:varchar(255);not null" json:"title"`
	Category       string            `gorm:"type:varchar(128);not null" json:"category"`
	Description    string            `gorm:"type:text;not null" json:"description"`
	Priority       ComplaintPriority `gorm:"type:complaint_priority;not null;default:'Medium'" json:"priority"`
	Status         ComplaintStatus   `gorm:"type:complaint_status;not null;default:'Pending'" json:"status"`
	SubmitterID    *uuid.UUID        `gorm:"type:uuid" json:"submitter_id"`
	AttachmentPath *string           `gorm:"type:text" json:"attachment_path"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	Submitter      *User           `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	Comments       []Comment       `gorm:"foreignKey:ComplaintID" json:"comments,omitempty"`
	TimelineEvents []TimelineEvent `gorm:"foreignKey:ComplaintID" json:"timeline_events,omitempty"`
	Escalations    []Escalation    `gorm:"foreignKey:ComplaintID" json:"escalations,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
