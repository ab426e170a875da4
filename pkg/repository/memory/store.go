// Package memory is an in-process user store for local runs and tests.
// A single mutex stands in for the per-document atomicity of the real stores.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

type record struct {
	user  auth.User
	tasks []task.Task
}

// Store implements both auth.UserRepository and task.Repository.
type Store struct {
	mu    sync.Mutex
	users []*record
}

func NewStore() *Store { return &Store{} }

func (s *Store) Create(_ context.Context, user auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	for _, r := range s.users {
		if r.user.Email == user.Email {
			return auth.ErrEmailInUse
		}
	}
	s.users = append(s.users, &record{user: user})
	return nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	for _, r := range s.users {
		if r.user.Email == email {
			return r.user, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

// Len reports the number of stored users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) Append(_ context.Context, ownerID string, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.byID(ownerID)
	if r == nil {
		return task.ErrOwnerNotFound
	}
	r.tasks = append(r.tasks, t)
	return nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.byID(ownerID)
	if r == nil {
		return nil, task.ErrOwnerNotFound
	}
	return append([]task.Task{}, r.tasks...), nil
}

func (s *Store) ListAll(_ context.Context) ([]task.OwnedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []task.OwnedTask{}
	for _, r := range s.users {
		for _, t := range r.tasks {
			res = append(res, task.OwnedTask{Task: t, Username: r.user.Username})
		}
	}
	return res, nil
}

func (s *Store) UpdateForOwner(_ context.Context, ownerID, taskID string, f task.Fields) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.byID(ownerID)
	if r == nil {
		return task.Task{}, task.ErrTaskNotFound
	}
	for i := range r.tasks {
		if r.tasks[i].TaskID != taskID {
			continue
		}
		t := &r.tasks[i]
		t.Name = f.Name
		t.Description = f.Description
		t.Priority = f.Priority
		t.DueDate = f.DueDate
		t.Status = f.Status
		return *t, nil
	}
	return task.Task{}, task.ErrTaskNotFound
}

func (s *Store) FindOwner(_ context.Context, taskID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.users {
		for _, t := range r.tasks {
			if t.TaskID == taskID {
				return r.user.ID, nil
			}
		}
	}
	return "", task.ErrTaskNotFound
}

func (s *Store) Remove(_ context.Context, ownerID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.byID(ownerID)
	if r == nil {
		return task.ErrTaskNotFound
	}
	for i, t := range r.tasks {
		if t.TaskID == taskID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return task.ErrTaskNotFound
}

func (s *Store) byID(id string) *record {
	for _, r := range s.users {
		if r.user.ID == id {
			return r
		}
	}
	return nil
}
