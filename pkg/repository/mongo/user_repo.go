package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

// UsersCollection holds one document per user with its tasks embedded.
const UsersCollection = "users"

type userDoc struct {
	ID           string      `bson:"_id"`
	Username     string      `bson:"username"`
	Email        string      `bson:"email"`
	PasswordHash string      `bson:"password"`
	Role         string      `bson:"role"`
	Tasks        []task.Task `bson:"tasks"`
	CreatedAt    time.Time   `bson:"createdAt"`
}

// UserRepository implements auth.UserRepository on a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository also ensures the indexes the store relies on.
func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	r := &UserRepository{coll: db.Collection(UsersCollection)}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UserRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "tasks.taskId", Value: 1}},
			Options: options.Index().SetName("tasks_task_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.coll.InsertOne(ctx, userDoc{
		ID:           user.ID,
		Username:     user.Username,
		Email:        strings.ToLower(user.Email),
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Tasks:        []task.Task{},
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailInUse
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx,
		bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(bson.M{"tasks": 0}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	return auth.User{
		ID:           doc.ID,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         auth.Role(doc.Role),
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}
