package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/princinho/taskbackend/database"
	"github.com/princinho/taskbackend/models"
	"github.com/princinho/taskbackend/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type TaskStore struct {
	col     *mongo.Collection
	metrics *observability.Metrics
}

func NewTaskStore(db *mongo.Database, metrics *observability.Metrics) *TaskStore {
	return &TaskStore{
		col:     db.Collection(database.TasksCollection),
		metrics: metrics,
	}
}

// BuildTaskFilter turns a listing filter into a query document. Empty fields
// are left out; the due date is an inclusive upper bound.
func BuildTaskFilter(f models.TaskFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.DueDate != nil {
		filter["dueDate"] = bson.M{"$lte": *f.DueDate}
	}
	return filter
}

// BuildTaskUpdate returns the $set (and, when clearing the due date, $unset)
// document for a partial update.
func BuildTaskUpdate(u models.TaskUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	if u.ClearDueDate {
		return bson.M{"$set": set, "$unset": bson.M{"dueDate": ""}}
	}
	if u.DueDate != nil {
		set["dueDate"] = *u.DueDate
	}
	return bson.M{"$set": set}
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	task.ID = bson.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now

	err := s.metrics.ObserveStore("tasks.create", func() error {
		_, err := s.col.InsertOne(ctx, task)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Find returns at most limit tasks after skipping skip, oldest first.
func (s *TaskStore) Find(ctx context.Context, f models.TaskFilter, limit, skip int64) ([]models.Task, error) {
	tasks := make([]models.Task, 0)

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	err := s.metrics.ObserveStore("tasks.find", func() error {
		cursor, err := s.col.Find(ctx, BuildTaskFilter(f), opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var t models.Task
			if err := cursor.Decode(&t); err != nil {
				return err
			}
			tasks = append(tasks, t)
		}
		return cursor.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	return s.single("tasks.find_by_id", func() *mongo.SingleResult {
		return s.col.FindOne(ctx, bson.M{"_id": id})
	})
}

// UpdateByID applies u and returns the document as it is after the update.
func (s *TaskStore) UpdateByID(ctx context.Context, id bson.ObjectID, u models.TaskUpdate) (*models.Task, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	return s.single("tasks.update_by_id", func() *mongo.SingleResult {
		return s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, BuildTaskUpdate(u, time.Now().UTC()), opts)
	})
}

func (s *TaskStore) DeleteByID(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	return s.single("tasks.delete_by_id", func() *mongo.SingleResult {
		return s.col.FindOneAndDelete(ctx, bson.M{"_id": id})
	})
}

// single decodes a one-document result; no match yields nil, nil.
func (s *TaskStore) single(op string, query func() *mongo.SingleResult) (*models.Task, error) {
	var task *models.Task

	err := s.metrics.ObserveStore(op, func() error {
		var err error
		task, err = decodeOne[models.Task](query().Decode)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return task, nil
}
