// Package repotest holds the behaviour every user/task store must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

// Factory returns empty repositories backed by the same store.
type Factory func(t *testing.T) (auth.UserRepository, task.Repository)

// Run exercises users and the embedded task collection against a fresh store per subtest.
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("tasks", func(t *testing.T) { testTasks(t, newStore) })
	t.Run("feed order", func(t *testing.T) { testFeedOrder(t, newStore) })
}

func NewUser(username string, role auth.Role) auth.User {
	return auth.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func NewTask(name string) task.Task {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return task.Task{
		TaskID:      uuid.NewString(),
		Name:        name,
		Description: name + " description",
		Priority:    task.PriorityMedium,
		DueDate:     now.Add(48 * time.Hour),
		Status:      task.StatusPending,
		CreatedAt:   now,
	}
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()
	users, _ := newStore(t)

	alice := NewUser("alice", auth.RoleUser)
	require.NoError(t, users.Create(ctx, alice))

	got, err := users.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, alice.Username, got.Username)
	assert.Equal(t, auth.RoleUser, got.Role)
	assert.Equal(t, alice.PasswordHash, got.PasswordHash)

	dup := NewUser("alice2", auth.RoleAdmin)
	dup.Email = "Alice@Example.com"
	require.ErrorIs(t, users.Create(ctx, dup), auth.ErrEmailInUse)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, auth.ErrNotFound)
}

func testTasks(t *testing.T, newStore Factory) {
	ctx := context.Background()
	users, tasks := newStore(t)

	alice := NewUser("alice", auth.RoleUser)
	bob := NewUser("bob", auth.RoleUser)
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	own, err := tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, own)

	t1, t2 := NewTask("first"), NewTask("second")
	require.NoError(t, tasks.Append(ctx, alice.ID, t1))
	require.NoError(t, tasks.Append(ctx, alice.ID, t2))
	require.ErrorIs(t, tasks.Append(ctx, uuid.NewString(), NewTask("orphan")), task.ErrOwnerNotFound)

	own, err = tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, t1.TaskID, own[0].TaskID)
	assert.Equal(t, t2.TaskID, own[1].TaskID)
	assert.True(t, t1.DueDate.Equal(own[0].DueDate))

	_, err = tasks.ListByOwner(ctx, uuid.NewString())
	require.ErrorIs(t, err, task.ErrOwnerNotFound)

	owner, err := tasks.FindOwner(ctx, t2.TaskID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner)
	_, err = tasks.FindOwner(ctx, uuid.NewString())
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	f := task.Fields{
		Name:        "renamed",
		Description: "changed",
		Priority:    task.PriorityHigh,
		DueDate:     t1.DueDate.Add(24 * time.Hour),
		Status:      task.StatusCompleted,
	}
	_, err = tasks.UpdateForOwner(ctx, bob.ID, t1.TaskID, f)
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	updated, err := tasks.UpdateForOwner(ctx, alice.ID, t1.TaskID, f)
	require.NoError(t, err)
	assert.Equal(t, t1.TaskID, updated.TaskID)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, task.StatusCompleted, updated.Status)
	assert.Equal(t, task.PriorityHigh, updated.Priority)
	assert.True(t, f.DueDate.Equal(updated.DueDate))
	assert.True(t, t1.CreatedAt.Equal(updated.CreatedAt))

	require.ErrorIs(t, tasks.Remove(ctx, bob.ID, t1.TaskID), task.ErrTaskNotFound)
	require.NoError(t, tasks.Remove(ctx, alice.ID, t1.TaskID))
	require.ErrorIs(t, tasks.Remove(ctx, alice.ID, t1.TaskID), task.ErrTaskNotFound)

	own, err = tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, t2.TaskID, own[0].TaskID)
}

func testFeedOrder(t *testing.T, newStore Factory) {
	ctx := context.Background()
	users, tasks := newStore(t)

	empty, err := tasks.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	alice := NewUser("alice", auth.RoleUser)
	bob := NewUser("bob", auth.RoleAdmin)
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	a1, a2, b1 := NewTask("a1"), NewTask("a2"), NewTask("b1")
	require.NoError(t, tasks.Append(ctx, bob.ID, b1))
	require.NoError(t, tasks.Append(ctx, alice.ID, a1))
	require.NoError(t, tasks.Append(ctx, alice.ID, a2))

	all, err := tasks.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a1", "a2", "b1"}, []string{all[0].Name, all[1].Name, all[2].Name})
	assert.Equal(t, []string{"alice", "alice", "bob"}, []string{all[0].Username, all[1].Username, all[2].Username})
}
