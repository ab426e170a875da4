package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Durgatriveni/Task-backend/pkg/task"
)

// TaskRepository manipulates the tasks array embedded in user documents.
// Each write is a single-document update and therefore atomic.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(UsersCollection)}
}

func (r *TaskRepository) Append(ctx context.Context, ownerID string, t task.Task) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$push": bson.M{"tasks": t}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return task.ErrOwnerNotFound
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx,
		bson.M{"_id": ownerID},
		options.FindOne().SetProjection(bson.M{"tasks": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, task.ErrOwnerNotFound
		}
		return nil, err
	}
	return utcTasks(doc.Tasks), nil
}

// ListAll walks the collection in natural order, which is storage order.
func (r *TaskRepository) ListAll(ctx context.Context) ([]task.OwnedTask, error) {
	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"username": 1, "tasks": 1}),
	)
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := []task.OwnedTask{}
	for _, d := range docs {
		for _, t := range utcTasks(d.Tasks) {
			res = append(res, task.OwnedTask{Task: t, Username: d.Username})
		}
	}
	return res, nil
}

func (r *TaskRepository) UpdateForOwner(ctx context.Context, ownerID, taskID string, f task.Fields) (task.Task, error) {
	var doc userDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": ownerID, "tasks.taskId": taskID},
		bson.M{"$set": bson.M{
			"tasks.$.taskName":        f.Name,
			"tasks.$.taskDescription": f.Description,
			"tasks.$.priority":        f.Priority,
			"tasks.$.dueDate":         f.DueDate,
			"tasks.$.status":          f.Status,
		}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"tasks": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	for _, t := range utcTasks(doc.Tasks) {
		if t.TaskID == taskID {
			return t, nil
		}
	}
	return task.Task{}, task.ErrTaskNotFound
}

func (r *TaskRepository) FindOwner(ctx context.Context, taskID string) (string, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx,
		bson.M{"tasks.taskId": taskID},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", task.ErrTaskNotFound
		}
		return "", err
	}
	return doc.ID, nil
}

func (r *TaskRepository) Remove(ctx context.Context, ownerID, taskID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": ownerID, "tasks.taskId": taskID},
		bson.M{"$pull": bson.M{"tasks": bson.M{"taskId": taskID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// BSON dates decode in local time; keep the domain in UTC.
func utcTasks(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		t.DueDate = t.DueDate.UTC()
		t.CreatedAt = t.CreatedAt.UTC()
		out = append(out, t)
	}
	return out
}
