package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"grievancehub/internal/model"
	"grievancehub/internal/repository"
)

// ComplaintStore is the persistence surface the lifecycle operations need.
// *repository.ComplaintRepository satisfies it.
type ComplaintStore interface {
	Create(ctx context.Context, complaint *model.Complaint, event *model.TimelineEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
	List(ctx context.Context, filter repository.ComplaintFilter) ([]model.Complaint, error)
	AddComment(ctx context.Context, comment *model.Comment, event *model.TimelineEvent) error
	ApplyStatusChange(ctx context.Context, change repository.StatusChange) error
	ListStale(ctx context.Context, cutoff time.Time) ([]model.Complaint, error)
}

// LifecycleService owns the complaint status field. Every status-affecting
// action goes through here and appends its timeline record in the same
// transaction as the write it describes.
type LifecycleService struct {
	complaints ComplaintStore
	log        zerolog.Logger
}

func NewLifecycleService(complaints ComplaintStore, log zerolog.Logger) *LifecycleService {
	return &LifecycleService{complaints: complaints, log: log}
}

type SubmitComplaintInput struct {
	Title          string
	Category       string
	Description    string
	Priority       model.ComplaintPriority
	AttachmentPath *string
}

// Submit creates a Pending complaint. submitterID is nil for anonymous
// submissions.
func (s *LifecycleService) Submit(ctx context.Context, input SubmitComplaintInput, submitterID *uuid.UUID) (*model.Complaint, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.Description) == "" {
		return nil, ErrInvalidInput
	}

	priority := input.Priority
	if priority == "" {
		priority = model.ComplaintPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidInput
	}

	complaint := &model.Complaint{
		Title:          input.Title,
		Category:       input.Category,
		Description:    input.Description,
		Priority:       priority,
		Status:         model.ComplaintStatusPending,
		SubmitterID:    submitterID,
		AttachmentPath: input.AttachmentPath,
	}

	details := "Submitted anonymously"
	if submitterID != nil {
		details = fmt.Sprintf("Submitted by user %s", submitterID)
	}
	event := &model.TimelineEvent{
		Action:  model.ActionComplaintSubmitted,
		Details: details,
	}

	if err := s.complaints.Create(ctx, complaint, event); err != nil {
		return nil, err
	}

	return s.complaints.GetByID(ctx, complaint.ID)
}

// Get returns the complaint with comments and timeline ordered by creation
// time ascending.
func (s *LifecycleService) Get(ctx context.Context, complaintID uuid.UUID) (*model.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return complaint, nil
}

func (s *LifecycleService) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]model.Complaint, error) {
	return s.complaints.List(ctx, repository.ComplaintFilter{SubmitterID: &submitterID})
}

type ListComplaintsOptions struct {
	Status   model.ComplaintStatus
	Category string
	DateFrom *time.Time
	Limit    int
	Offset   int
}

func (s *LifecycleService) ListAll(ctx context.Context, principal model.Principal, opts ListComplaintsOptions) ([]model.Complaint, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	filter := repository.ComplaintFilter{
		Category: opts.Category,
		DateFrom: opts.DateFrom,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}
	if opts.Status != "" {
		filter.Statuses = []model.ComplaintStatus{opts.Status}
	}
	return s.complaints.List(ctx, filter)
}

// AddComment lets the original submitter or an admin comment. Anonymous
// complaints have no submitter, so only admins can comment on them.
func (s *LifecycleService) AddComment(ctx context.Context, principal model.Principal, complaintID uuid.UUID, message string) (*model.Comment, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrInvalidInput
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isSubmitter := complaint.SubmitterID != nil && *complaint.SubmitterID == principal.UserID
	if !isSubmitter && !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	comment := &model.Comment{
		ComplaintID: complaint.ID,
		AuthorID:    principal.UserID,
		Message:     message,
	}
	event := &model.TimelineEvent{
		ComplaintID: complaint.ID,
		Action:      model.ActionCommentAdded,
		Details:     fmt.Sprintf("Comment added by %s %s", strings.ToLower(string(principal.Role)), principal.UserID),
	}

	if err := s.complaints.AddComment(ctx, comment, event); err != nil {
		return nil, err
	}
	return comment, nil
}

// Respond records an admin response. The status write is unrestricted: any
// status may move to any other, including re-opening a Resolved complaint.
func (s *LifecycleService) Respond(ctx context.Context, principal model.Principal, complaintID uuid.UUID, newStatus model.ComplaintStatus, response string) (*model.Complaint, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !newStatus.Valid() || strings.TrimSpace(response) == "" {
		return nil, ErrInvalidInput
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldStatus := complaint.Status
	events := []model.TimelineEvent{
		{
			Action:  model.ActionAdminResponded,
			Details: fmt.Sprintf("Response added by admin %s", principal.UserID),
		},
	}
	if oldStatus != newStatus {
		events = append(events, model.TimelineEvent{
			Action:  model.ActionStatusChanged,
			Details: fmt.Sprintf("Status changed from %s to %s by admin %s", oldStatus, newStatus, principal.UserID),
		})
	}

	change := repository.StatusChange{
		ComplaintID: complaint.ID,
		NewStatus:   newStatus,
		Comment: &model.Comment{
			ComplaintID: complaint.ID,
			AuthorID:    principal.UserID,
			Message:     response,
		},
		Events: events,
	}
	if err := s.complaints.ApplyStatusChange(ctx, change); err != nil {
		return nil, err
	}

	return s.complaints.GetByID(ctx, complaint.ID)
}

// Escalate is the manual escalation path. It refuses complaints that are
// already Escalated or Resolved, before any write happens.
func (s *LifecycleService) Escalate(ctx context.Context, principal model.Principal, complaintID uuid.UUID) (*model.Complaint, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if complaint.Status == model.ComplaintStatusEscalated || complaint.Status == model.ComplaintStatusResolved {
		return nil, fmt.Errorf("%w: complaint is already %s", ErrInvalidStatus, complaint.Status)
	}

	oldStatus := complaint.Status
	change := repository.StatusChange{
		ComplaintID: complaint.ID,
		NewStatus:   model.ComplaintStatusEscalated,
		Escalation:  &model.Escalation{ComplaintID: complaint.ID, EscalationLevel: 1},
		Events: []model.TimelineEvent{
			{
				Action:  model.ActionComplaintEscalated,
				Details: fmt.Sprintf("Manually escalated from %s by admin %s", oldStatus, principal.UserID),
			},
		},
	}
	if err := s.complaints.ApplyStatusChange(ctx, change); err != nil {
		return nil, err
	}

	return s.complaints.GetByID(ctx, complaint.ID)
}

// SweepStale escalates every complaint that is not Resolved and was created
// at or before now minus thresholdDays. Already-Escalated complaints are
// swept again and gain another Escalation row; there is no dedup. Each row is
// its own transaction, and a failing row is skipped rather than aborting the
// batch. Returns the number of complaints escalated.
func (s *LifecycleService) SweepStale(ctx context.Context, now time.Time, thresholdDays int) (int, error) {
	cutoff := now.AddDate(0, 0, -thresholdDays)

	stale, err := s.complaints.ListStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, complaint := range stale {
		change := repository.StatusChange{
			ComplaintID: complaint.ID,
			NewStatus:   model.ComplaintStatusEscalated,
			Escalation:  &model.Escalation{ComplaintID: complaint.ID, EscalationLevel: 1},
			Events: []model.TimelineEvent{
				{
					Action:  model.ActionAutoEscalated,
					Details: fmt.Sprintf("Automatically escalated after %d days without resolution", thresholdDays),
				},
			},
		}
		if err := s.complaints.ApplyStatusChange(ctx, change); err != nil {
			s.log.Error().Err(err).Str("complaint_id", complaint.ID.String()).Msg("sweep: escalation failed, skipping row")
			continue
		}
		count++
	}

	return count, nil
}
