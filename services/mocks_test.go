package services

import (
	"context"
	"log/slog"

	"github.com/princinho/taskbackend/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

type mockTaskStore struct {
	mock.Mock
}

func (m *mockTaskStore) Create(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskStore) Find(ctx context.Context, filter models.TaskFilter, limit, skip int64) ([]models.Task, error) {
	args := m.Called(ctx, filter, limit, skip)
	tasks, _ := args.Get(0).([]models.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) UpdateByID(ctx context.Context, id bson.ObjectID, update models.TaskUpdate) (*models.Task, error) {
	args := m.Called(ctx, id, update)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) DeleteByID(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}
