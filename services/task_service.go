package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/princinho/taskbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	DefaultTaskLimit = 10
	DefaultTaskPage  = 1
)

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	Find(ctx context.Context, filter models.TaskFilter, limit, skip int64) ([]models.Task, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Task, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, update models.TaskUpdate) (*models.Task, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*models.Task, error)
}

type TaskService struct {
	tasks TaskStore
	log   *slog.Logger
}

func NewTaskService(tasks TaskStore, log *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, log: log}
}

func (s *TaskService) CreateTask(ctx context.Context, in models.NewTask) (*models.Task, error) {
	priority := in.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    priority,
		DueDate:     in.DueDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.log.DebugContext(ctx, "task created", "task_id", task.ID.Hex())
	return task, nil
}

// Paginate clamps limit and page to at least 1 and returns the effective
// limit and the number of records to skip. A skip that would overflow
// saturates at math.MaxInt64, which yields an empty page.
func Paginate(limit, page int) (effLimit, skip int64) {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	effLimit = int64(limit)
	pagesBefore := int64(page) - 1
	if pagesBefore > math.MaxInt64/effLimit {
		return effLimit, math.MaxInt64
	}
	return effLimit, pagesBefore * effLimit
}

func (s *TaskService) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	limit, skip := Paginate(filter.Limit, filter.Page)

	tasks, err := s.tasks.Find(ctx, filter, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// GetTask returns nil, nil when the task does not exist.
func (s *TaskService) GetTask(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return task, nil
}

// UpdateTask applies only the fields set in update and returns nil, nil when
// the task does not exist.
func (s *TaskService) UpdateTask(ctx context.Context, id bson.ObjectID, update models.TaskUpdate) (*models.Task, error) {
	task, err := s.tasks.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return task, nil
}

// DeleteTask returns the removed task, or nil, nil when there was none.
func (s *TaskService) DeleteTask(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	task, err := s.tasks.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return task, nil
}
