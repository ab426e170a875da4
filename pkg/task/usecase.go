package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
)

var (
	ErrOwnerNotFound = errors.New("user not found")
	ErrTaskNotFound  = errors.New("task not found")
)

// ValidationError is a rejected input; the message is safe to show to clients.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// UseCase covers task management for an authenticated identity.
type UseCase interface {
	Create(ctx context.Context, owner auth.Identity, f Fields) (Task, error)
	ListOwn(ctx context.Context, owner auth.Identity) ([]Task, error)
	ListAll(ctx context.Context) ([]OwnedTask, error)
	Update(ctx context.Context, owner auth.Identity, taskID string, f Fields) (Task, error)
	Delete(ctx context.Context, actor auth.Identity, taskID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*service)

// WithClock replaces the clock used to stamp createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) UseCase {
	s := &service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, owner auth.Identity, f Fields) (Task, error) {
	f, err := normalize(f)
	if err != nil {
		return Task{}, err
	}
	t := Task{
		TaskID:      uuid.NewString(),
		Name:        f.Name,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     storedTime(f.DueDate),
		Status:      f.Status,
		CreatedAt:   storedTime(s.now()),
	}
	if err := s.repo.Append(ctx, owner.UserID, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) ListOwn(ctx context.Context, owner auth.Identity) ([]Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *service) ListAll(ctx context.Context) ([]OwnedTask, error) {
	tasks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []OwnedTask{}
	}
	return tasks, nil
}

func (s *service) Update(ctx context.Context, owner auth.Identity, taskID string, f Fields) (Task, error) {
	f, err := normalize(f)
	if err != nil {
		return Task{}, err
	}
	f.DueDate = storedTime(f.DueDate)
	return s.repo.UpdateForOwner(ctx, owner.UserID, taskID, f)
}

// Delete removes taskID if actor owns it or is an admin. Tasks held by someone
// else are reported as missing so that ids of other users are not disclosed.
func (s *service) Delete(ctx context.Context, actor auth.Identity, taskID string) error {
	ownerID, err := s.repo.FindOwner(ctx, taskID)
	if err != nil {
		return err
	}
	if ownerID != actor.UserID && !actor.IsAdmin() {
		return ErrTaskNotFound
	}
	return s.repo.Remove(ctx, ownerID, taskID)
}

// storedTime is the UTC millisecond precision every backend round-trips exactly.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func normalize(f Fields) (Fields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	if f.Name == "" || f.Description == "" {
		return Fields{}, ValidationError("taskName and taskDescription are required")
	}
	if f.DueDate.IsZero() {
		return Fields{}, ValidationError("dueDate is required")
	}
	if f.Priority == "" {
		f.Priority = PriorityLow
	}
	if !f.Priority.Valid() {
		return Fields{}, ValidationError("priority must be one of Low, Medium, High")
	}
	if f.Status == "" {
		f.Status = StatusPending
	}
	if !f.Status.Valid() {
		return Fields{}, ValidationError("status must be one of Pending, In Progress, Completed")
	}
	return f, nil
}
