package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grievancehub/internal/model"
	"grievancehub/internal/repository"
)

// memComplaintStore is an in-memory ComplaintStore. It mirrors the repository
// contract closely enough for the lifecycle tests: GetByID returns
// associations ordered by creation time ascending, missing rows surface
// gorm.ErrRecordNotFound, and ApplyStatusChange is all-or-nothing per row.
type memComplaintStore struct {
	complaints  map[uuid.UUID]*model.Complaint
	comments    map[uuid.UUID][]model.Comment
	events      map[uuid.UUID][]model.TimelineEvent
	escalations map[uuid.UUID][]model.Escalation
	applyErr    map[uuid.UUID]error
	now         time.Time
}

func newMemComplaintStore() *memComplaintStore {
	return &memComplaintStore{
		complaints:  make(map[uuid.UUID]*model.Complaint),
		comments:    make(map[uuid.UUID][]model.Comment),
		events:      make(map[uuid.UUID][]model.TimelineEvent),
		escalations: make(map[uuid.UUID][]model.Escalation),
		applyErr:    make(map[uuid.UUID]error),
		now:         time.Now(),
	}
}

func (s *memComplaintStore) tick() time.Time {
	s.now = s.now.Add(time.Millisecond)
	return s.now
}

func (s *memComplaintStore) Create(ctx context.Context, complaint *model.Complaint, event *model.TimelineEvent) error {
	if complaint.ID == uuid.Nil {
		complaint.ID = uuid.New()
	}
	ts := s.tick()
	complaint.CreatedAt = ts
	complaint.UpdatedAt = ts
	stored := *complaint
	s.complaints[complaint.ID] = &stored

	event.ComplaintID = complaint.ID
	s.appendEvent(*event)
	return nil
}

func (s *memComplaintStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	stored, ok := s.complaints[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	complaint := *stored
	complaint.Comments = append([]model.Comment(nil), s.comments[id]...)
	complaint.TimelineEvents = append([]model.TimelineEvent(nil), s.events[id]...)
	complaint.Escalations = append([]model.Escalation(nil), s.escalations[id]...)
	sort.Slice(complaint.Comments, func(i, j int) bool {
		return complaint.Comments[i].CreatedAt.Before(complaint.Comments[j].CreatedAt)
	})
	sort.Slice(complaint.TimelineEvents, func(i, j int) bool {
		return complaint.TimelineEvents[i].CreatedAt.Before(complaint.TimelineEvents[j].CreatedAt)
	})
	return &complaint, nil
}

func (s *memComplaintStore) List(ctx context.Context, filter repository.ComplaintFilter) ([]model.Complaint, error) {
	var out []model.Complaint
	for _, stored := range s.complaints {
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if stored.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if filter.Category != "" && stored.Category != filter.Category {
			continue
		}
		if filter.SubmitterID != nil {
			if stored.SubmitterID == nil || *stored.SubmitterID != *filter.SubmitterID {
				continue
			}
		}
		if filter.DateFrom != nil && stored.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		out = append(out, *stored)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memComplaintStore) AddComment(ctx context.Context, comment *model.Comment, event *model.TimelineEvent) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = s.tick()
	s.comments[comment.ComplaintID] = append(s.comments[comment.ComplaintID], *comment)
	s.appendEvent(*event)
	return nil
}

func (s *memComplaintStore) ApplyStatusChange(ctx context.Context, change repository.StatusChange) error {
	if err := s.applyErr[change.ComplaintID]; err != nil {
		return err
	}
	stored, ok := s.complaints[change.ComplaintID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = change.NewStatus
	stored.UpdatedAt = s.tick()
	if change.Comment != nil {
		comment := *change.Comment
		comment.ComplaintID = change.ComplaintID
		if comment.ID == uuid.Nil {
			comment.ID = uuid.New()
		}
		comment.CreatedAt = s.tick()
		s.comments[change.ComplaintID] = append(s.comments[change.ComplaintID], comment)
	}
	if change.Escalation != nil {
		escalation := *change.Escalation
		escalation.ComplaintID = change.ComplaintID
		if escalation.ID == uuid.Nil {
			escalation.ID = uuid.New()
		}
		escalation.EscalatedAt = s.tick()
		s.escalations[change.ComplaintID] = append(s.escalations[change.ComplaintID], escalation)
	}
	for _, event := range change.Events {
		event.ComplaintID = change.ComplaintID
		s.appendEvent(event)
	}
	return nil
}

func (s *memComplaintStore) ListStale(ctx context.Context, cutoff time.Time) ([]model.Complaint, error) {
	var out []model.Complaint
	for _, stored := range s.complaints {
		if stored.Status == model.ComplaintStatusResolved {
			continue
		}
		if stored.CreatedAt.After(cutoff) {
			continue
		}
		out = append(out, *stored)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memComplaintStore) appendEvent(event model.TimelineEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = s.tick()
	s.events[event.ComplaintID] = append(s.events[event.ComplaintID], event)
}

// seed inserts a complaint directly, bypassing Submit, so tests control the
// status and creation timestamp.
func (s *memComplaintStore) seed(status model.ComplaintStatus, createdAt time.Time, submitterID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.complaints[id] = &model.Complaint{
		ID:          id,
		Title:       "seeded",
		Category:    "General",
		Description: "seeded complaint",
		Priority:    model.ComplaintPriorityMedium,
		Status:      status,
		SubmitterID: submitterID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	return id
}

// memUserStore is an in-memory UserStore for account tests.
type memUserStore struct {
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byID:    make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	s.byID[user.ID] = &stored
	s.byEmail[user.Email] = &stored
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}
