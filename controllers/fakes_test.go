package controllers_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princinho/taskbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

type fakeTaskService struct {
	createFn func(ctx context.Context, in models.NewTask) (*models.Task, error)
	listFn   func(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	getFn    func(ctx context.Context, id bson.ObjectID) (*models.Task, error)
	updateFn func(ctx context.Context, id bson.ObjectID, update models.TaskUpdate) (*models.Task, error)
	deleteFn func(ctx context.Context, id bson.ObjectID) (*models.Task, error)
}

func (f *fakeTaskService) CreateTask(ctx context.Context, in models.NewTask) (*models.Task, error) {
	if f.createFn != nil {
		return f.createFn(ctx, in)
	}
	return &models.Task{ID: bson.NewObjectID(), Title: in.Title, Status: in.Status, Priority: in.Priority}, nil
}

func (f *fakeTaskService) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return []models.Task{}, nil
}

func (f *fakeTaskService) GetTask(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, id bson.ObjectID, update models.TaskUpdate) (*models.Task, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, update)
	}
	return nil, nil
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, id bson.ObjectID) (*models.Task, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil, nil
}

type fakeAuthService struct {
	signUpFn  func(ctx context.Context, username, password string) (*models.User, error)
	signInFn  func(ctx context.Context, username, password string) (string, string, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
}

func (f *fakeAuthService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	if f.signUpFn != nil {
		return f.signUpFn(ctx, username, password)
	}
	return &models.User{ID: bson.NewObjectID(), Username: username, PasswordHash: "hash"}, nil
}

func (f *fakeAuthService) SignIn(ctx context.Context, username, password string) (string, string, error) {
	if f.signInFn != nil {
		return f.signInFn(ctx, username, password)
	}
	return "access", "refresh", nil
}

func (f *fakeAuthService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	if f.refreshFn != nil {
		return f.refreshFn(ctx, refreshToken)
	}
	return "access", nil
}
