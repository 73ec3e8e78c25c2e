package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grievancehub/internal/model"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

type ComplaintFilter struct {
	Statuses    []model.ComplaintStatus
	Category    string
	SubmitterID *uuid.UUID
	DateFrom    *time.Time
	Limit       int
	Offset      int
}

// StatusChange bundles every row touched by one status-affecting operation.
// Apply writes all of them in a single transaction so a crash can never leave
// a status update without its audit trail, or the reverse.
type StatusChange struct {
	ComplaintID uuid.UUID
	NewStatus   model.ComplaintStatus
	Comment     *model.Comment
	Escalation  *model.Escalation
	Events      []model.TimelineEvent
}

// Create inserts the complaint together with its submission timeline event.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *model.Complaint, event *model.TimelineEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}
		event.ComplaintID = complaint.ID
		return tx.Create(event).Error
	})
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	var complaint model.Complaint
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Preload("Submitter").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("complaint_comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("TimelineEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("complaint_timeline_events.created_at ASC")
		}).
		Preload("Escalations", func(db *gorm.DB) *gorm.DB {
			return db.Order("complaint_escalations.escalated_at ASC")
		}).
		First(&complaint, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error) {
	query := r.db.WithContext(ctx).Model(&model.Complaint{})

	if len(filter.Statuses) > 0 {
		query = query.Where("complaints.status IN ?", filter.Statuses)
	}
	if filter.Category != "" {
		query = query.Where("complaints.category = ?", filter.Category)
	}
	if filter.SubmitterID != nil {
		query = query.Where("complaints.submitter_id = ?", *filter.SubmitterID)
	}
	if filter.DateFrom != nil {
		query = query.Where("complaints.created_at >= ?", *filter.DateFrom)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var complaints []model.Complaint
	if err := query.
		Order("complaints.created_at DESC").
		Preload("Submitter").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ComplaintRepository) AddComment(ctx context.Context, comment *model.Comment, event *model.TimelineEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
}

func (r *ComplaintRepository) ApplyStatusChange(ctx context.Context, change StatusChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Complaint{}).
			Where("id = ?", change.ComplaintID).
			Update("status", change.NewStatus).Error; err != nil {
			return err
		}
		if change.Comment != nil {
			change.Comment.ComplaintID = change.ComplaintID
			if err := tx.Create(change.Comment).Error; err != nil {
				return err
			}
		}
		if change.Escalation != nil {
			change.Escalation.ComplaintID = change.ComplaintID
			if err := tx.Create(change.Escalation).Error; err != nil {
				return err
			}
		}
		for i := range change.Events {
			change.Events[i].ComplaintID = change.ComplaintID
			if err := tx.Create(&change.Events[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListStale returns every complaint the sweep should escalate: not Resolved
// and created at or before the cutoff. Already-Escalated rows are included.
func (r *ComplaintRepository) ListStale(ctx context.Context, cutoff time.Time) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("status <> ?", model.ComplaintStatusResolved).
		Where("created_at <= ?", cutoff).
		Order("created_at ASC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}
