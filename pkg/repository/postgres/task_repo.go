package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Durgatriveni/Task-backend/pkg/task"
)

// TaskRepository keeps tasks embedded in users.tasks (JSONB array). Every
// write is a single-row UPDATE, so it is atomic per user.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// matchTask is the containment predicate served by the GIN index on tasks.
const matchTask = `tasks @> jsonb_build_array(jsonb_build_object('taskId', $2::text))`

func (r *TaskRepository) Append(ctx context.Context, ownerID string, t task.Task) error {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return task.ErrOwnerNotFound
	}
	doc, err := json.Marshal([]task.Task{t})
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET tasks = tasks || $2::jsonb WHERE id = $1`, id, string(doc))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrOwnerNotFound
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, task.ErrOwnerNotFound
	}
	var raw []byte
	if err := r.pool.QueryRow(ctx, `SELECT tasks FROM users WHERE id = $1`, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrOwnerNotFound
		}
		return nil, err
	}
	return decodeTasks(raw)
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]task.OwnedTask, error) {
	rows, err := r.pool.Query(ctx, `SELECT username, tasks FROM users ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []task.OwnedTask{}
	for rows.Next() {
		var (
			username string
			raw      []byte
		)
		if err := rows.Scan(&username, &raw); err != nil {
			return nil, err
		}
		tasks, err := decodeTasks(raw)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			res = append(res, task.OwnedTask{Task: t, Username: username})
		}
	}
	return res, rows.Err()
}

type taskPatch struct {
	Name        string        `json:"taskName"`
	Description string        `json:"taskDescription"`
	Priority    task.Priority `json:"priority"`
	DueDate     time.Time     `json:"dueDate"`
	Status      task.Status   `json:"status"`
}

func (r *TaskRepository) UpdateForOwner(ctx context.Context, ownerID, taskID string, f task.Fields) (task.Task, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return task.Task{}, task.ErrTaskNotFound
	}
	patch, err := json.Marshal(taskPatch{
		Name:        f.Name,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
		Status:      f.Status,
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("encode task patch: %w", err)
	}
	var raw []byte
	err = r.pool.QueryRow(ctx, `
UPDATE users u
SET tasks = (
	SELECT jsonb_agg(CASE WHEN e.t->>'taskId' = $2::text THEN e.t || $3::jsonb ELSE e.t END ORDER BY e.ord)
	FROM jsonb_array_elements(u.tasks) WITH ORDINALITY AS e(t, ord)
)
WHERE u.id = $1 AND u.`+matchTask+`
RETURNING u.tasks
`, id, taskID, string(patch)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range tasks {
		if t.TaskID == taskID {
			return t, nil
		}
	}
	return task.Task{}, task.ErrTaskNotFound
}

func (r *TaskRepository) FindOwner(ctx context.Context, taskID string) (string, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
SELECT id FROM users
WHERE tasks @> jsonb_build_array(jsonb_build_object('taskId', $1::text))
LIMIT 1
`, taskID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", task.ErrTaskNotFound
		}
		return "", err
	}
	return id.String(), nil
}

func (r *TaskRepository) Remove(ctx context.Context, ownerID, taskID string) error {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return task.ErrTaskNotFound
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE users u
SET tasks = COALESCE((
	SELECT jsonb_agg(e.t ORDER BY e.ord)
	FROM jsonb_array_elements(u.tasks) WITH ORDINALITY AS e(t, ord)
	WHERE e.t->>'taskId' <> $2::text
), '[]'::jsonb)
WHERE u.id = $1 AND u.`+matchTask, id, taskID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func decodeTasks(raw []byte) ([]task.Task, error) {
	tasks := []task.Task{}
	if len(raw) == 0 {
		return tasks, nil
	}
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}
