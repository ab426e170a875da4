package task

import (
	"context"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a work item embedded in exactly one user record.
// The json tags double as the stored document shape.
type Task struct {
	TaskID      string    `json:"taskId" bson:"taskId"`
	Name        string    `json:"taskName" bson:"taskName"`
	Description string    `json:"taskDescription" bson:"taskDescription"`
	Priority    Priority  `json:"priority" bson:"priority"`
	DueDate     time.Time `json:"dueDate" bson:"dueDate"`
	Status      Status    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// OwnedTask is a task annotated with its owner's username, as returned by the feed.
type OwnedTask struct {
	Task
	Username string `json:"username"`
}

// Fields are the client-editable attributes of a task.
type Fields struct {
	Name        string
	Description string
	Priority    Priority
	DueDate     time.Time
	Status      Status
}

// Repository is the port to the user store for the embedded task collection.
// Every mutating method touches a single user document and must be atomic for it.
type Repository interface {
	// Append pushes t onto the owner's tasks; ErrOwnerNotFound when the user is unknown.
	Append(ctx context.Context, ownerID string, t Task) error
	// ListByOwner returns ErrOwnerNotFound when the user is unknown.
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	// ListAll returns users in storage order and their tasks in storage order.
	ListAll(ctx context.Context) ([]OwnedTask, error)
	// UpdateForOwner overwrites the editable fields of taskID only if ownerID holds it.
	UpdateForOwner(ctx context.Context, ownerID, taskID string, f Fields) (Task, error)
	// FindOwner resolves the owning user id of taskID across all users.
	FindOwner(ctx context.Context, taskID string) (string, error)
	// Remove pulls taskID from ownerID's tasks; ErrTaskNotFound if it is not there.
	Remove(ctx context.Context, ownerID, taskID string) error
}
