package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/repository/memory"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

var due = time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc    task.UseCase
	alice auth.Identity
	bob   auth.Identity
	admin auth.Identity
}

func setup(t *testing.T, opts ...task.Option) fixture {
	t.Helper()
	store := memory.NewStore()
	add := func(name string, role auth.Role) auth.Identity {
		u := auth.User{ID: uuid.NewString(), Username: name, Email: name + "@example.com", Role: role}
		require.NoError(t, store.Create(context.Background(), u))
		return auth.Identity{UserID: u.ID, Role: role}
	}
	return fixture{
		uc:    task.NewService(store, opts...),
		alice: add("alice", auth.RoleUser),
		bob:   add("bob", auth.RoleUser),
		admin: add("root", auth.RoleAdmin),
	}
}

func fields(name string) task.Fields {
	return task.Fields{Name: name, Description: name + " details", DueDate: due}
}

func TestCreateAppliesDefaults(t *testing.T) {
	now := time.Date(2026, 10, 1, 9, 30, 0, 0, time.FixedZone("X", 3600))
	f := setup(t, task.WithClock(func() time.Time { return now }))

	got, err := f.uc.Create(context.Background(), f.alice, fields("write report"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.TaskID)
	assert.Equal(t, task.PriorityLow, got.Priority)
	assert.Equal(t, task.StatusPending, got.Status)
	assert.Equal(t, now.UTC(), got.CreatedAt)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())

	own, err := f.uc.ListOwn(context.Background(), f.alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, got, own[0])
}

func TestTimesKeepMillisecondPrecision(t *testing.T) {
	now := time.Date(2026, 10, 1, 9, 30, 0, 123456789, time.UTC)
	f := setup(t, task.WithClock(func() time.Time { return now }))
	in := fields("precise")
	in.DueDate = time.Date(2026, 11, 2, 8, 0, 0, 987654321, time.FixedZone("X", -7200))

	got, err := f.uc.Create(context.Background(), f.alice, in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 9, 30, 0, 123000000, time.UTC), got.CreatedAt)
	assert.Equal(t, time.Date(2026, 11, 2, 10, 0, 0, 987000000, time.UTC), got.DueDate)

	in.DueDate = in.DueDate.Add(time.Hour)
	updated, err := f.uc.Update(context.Background(), f.alice, got.TaskID, in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 11, 0, 0, 987000000, time.UTC), updated.DueDate)
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	f := setup(t)
	seen := map[string]bool{}
	var last time.Time
	for i := 0; i < 20; i++ {
		got, err := f.uc.Create(context.Background(), f.alice, fields("t"))
		require.NoError(t, err)
		assert.False(t, seen[got.TaskID], "duplicate id %s", got.TaskID)
		seen[got.TaskID] = true
		assert.False(t, got.CreatedAt.Before(last))
		last = got.CreatedAt
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*task.Fields)
	}{
		{"no name", func(f *task.Fields) { f.Name = " " }},
		{"no description", func(f *task.Fields) { f.Description = "" }},
		{"no due date", func(f *task.Fields) { f.DueDate = time.Time{} }},
		{"bad priority", func(f *task.Fields) { f.Priority = "Urgent" }},
		{"bad status", func(f *task.Fields) { f.Status = "Done" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			in := fields("x")
			tt.mod(&in)
			_, err := f.uc.Create(context.Background(), f.alice, in)
			var verr task.ValidationError
			require.ErrorAs(t, err, &verr)

			own, err := f.uc.ListOwn(context.Background(), f.alice)
			require.NoError(t, err)
			assert.Empty(t, own)
		})
	}
}

func TestUnknownOwner(t *testing.T) {
	f := setup(t)
	ghost := auth.Identity{UserID: uuid.NewString(), Role: auth.RoleUser}

	_, err := f.uc.Create(context.Background(), ghost, fields("x"))
	require.ErrorIs(t, err, task.ErrOwnerNotFound)
	_, err = f.uc.ListOwn(context.Background(), ghost)
	require.ErrorIs(t, err, task.ErrOwnerNotFound)
}

func TestListOwnEmptyIsNotNil(t *testing.T) {
	f := setup(t)
	own, err := f.uc.ListOwn(context.Background(), f.bob)
	require.NoError(t, err)
	assert.NotNil(t, own)
	assert.Empty(t, own)

	all, err := f.uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, f.alice, task.Fields{
		Name: "a", Description: "b", DueDate: due, Priority: task.PriorityHigh, Status: task.StatusInProgress,
	})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, f.bob, created.TaskID, fields("stolen"))
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = f.uc.Update(ctx, f.alice, uuid.NewString(), fields("missing"))
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	// Omitted enums fall back to defaults rather than keeping old values.
	updated, err := f.uc.Update(ctx, f.alice, created.TaskID, fields("renamed"))
	require.NoError(t, err)
	assert.Equal(t, created.TaskID, updated.TaskID)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, task.PriorityLow, updated.Priority)
	assert.Equal(t, task.StatusPending, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = f.uc.Update(ctx, f.alice, created.TaskID, task.Fields{Name: "a", DueDate: due})
	var verr task.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	mine, err := f.uc.Create(ctx, f.alice, fields("mine"))
	require.NoError(t, err)
	other, err := f.uc.Create(ctx, f.alice, fields("other"))
	require.NoError(t, err)

	require.ErrorIs(t, f.uc.Delete(ctx, f.bob, mine.TaskID), task.ErrTaskNotFound)
	require.NoError(t, f.uc.Delete(ctx, f.alice, mine.TaskID))
	require.ErrorIs(t, f.uc.Delete(ctx, f.alice, mine.TaskID), task.ErrTaskNotFound)

	require.NoError(t, f.uc.Delete(ctx, f.admin, other.TaskID))

	own, err := f.uc.ListOwn(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestListAll(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, f.bob, fields("b1"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.alice, fields("a1"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.alice, fields("a2"))
	require.NoError(t, err)

	all, err := f.uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "a1", all[0].Name)
	assert.Equal(t, "a2", all[1].Name)
	assert.Equal(t, "bob", all[2].Username)
}
