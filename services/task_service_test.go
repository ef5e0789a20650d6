package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/princinho/taskbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCreateTask_DefaultsPriority(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())
	ctx := context.Background()

	tasks.On("Create", ctx, mock.MatchedBy(func(task *models.Task) bool {
		return task.Priority == models.TaskPriorityMedium && task.Title == "Write report"
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Task).ID = bson.NewObjectID() }).
		Return(nil)

	task, err := svc.CreateTask(ctx, models.NewTask{Title: "Write report", Status: models.TaskStatusNew})
	require.NoError(t, err)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	assert.Equal(t, models.TaskStatusNew, task.Status)
	assert.False(t, task.ID.IsZero())
	tasks.AssertExpectations(t)
}

func TestCreateTask_KeepsGivenPriority(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())
	ctx := context.Background()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tasks.On("Create", ctx, mock.Anything).Return(nil)

	task, err := svc.CreateTask(ctx, models.NewTask{
		Title:    "Ship",
		Status:   models.TaskStatusInProgress,
		Priority: models.TaskPriorityHigh,
		DueDate:  &due,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskPriorityHigh, task.Priority)
	assert.Equal(t, &due, task.DueDate)
}

func TestCreateTask_StoreFailure(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())

	tasks.On("Create", mock.Anything, mock.Anything).Return(errors.New("boom"))

	_, err := svc.CreateTask(context.Background(), models.NewTask{Title: "x", Status: models.TaskStatusNew})
	assert.ErrorIs(t, err, ErrStore)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		limit, page int
		wantLimit   int64
		wantSkip    int64
	}{
		{"defaults", DefaultTaskLimit, DefaultTaskPage, 10, 0},
		{"second page", 5, 2, 5, 5},
		{"third page", 10, 3, 10, 20},
		{"zero limit clamps", 0, 1, 1, 0},
		{"negative page clamps", 5, -3, 5, 0},
		{"huge page saturates", 10, math.MaxInt64, 10, math.MaxInt64},
		{"huge limit saturates", math.MaxInt64, 3, math.MaxInt64, math.MaxInt64},
		{"largest exact skip", 1, math.MaxInt64, 1, math.MaxInt64 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, skip := Paginate(tt.limit, tt.page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantSkip, skip)
		})
	}
}

func TestListTasks_PassesPagination(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())
	ctx := context.Background()

	filter := models.TaskFilter{Status: models.TaskStatusNew, Limit: 5, Page: 2}
	want := []models.Task{{ID: bson.NewObjectID(), Title: "a", Status: models.TaskStatusNew}}
	tasks.On("Find", ctx, filter, int64(5), int64(5)).Return(want, nil)

	got, err := svc.ListTasks(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	tasks.AssertExpectations(t)
}

func TestListTasks_EmptyIsNotNil(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())

	tasks.On("Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.ListTasks(context.Background(), models.TaskFilter{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetUpdateDelete_Absent(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())
	ctx := context.Background()
	id := bson.NewObjectID()

	tasks.On("FindByID", ctx, id).Return(nil, nil)
	tasks.On("UpdateByID", ctx, id, mock.Anything).Return(nil, nil)
	tasks.On("DeleteByID", ctx, id).Return(nil, nil)

	task, err := svc.GetTask(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, task)

	title := "renamed"
	task, err = svc.UpdateTask(ctx, id, models.TaskUpdate{Title: &title})
	assert.NoError(t, err)
	assert.Nil(t, task)

	task, err = svc.DeleteTask(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func TestUpdateTask_ReturnsUpdated(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())
	ctx := context.Background()
	id := bson.NewObjectID()

	status := models.TaskStatusCompleted
	update := models.TaskUpdate{Status: &status}
	tasks.On("UpdateByID", ctx, id, update).Return(&models.Task{ID: id, Title: "a", Status: status}, nil)

	task, err := svc.UpdateTask(ctx, id, update)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, task.Status)
}

func TestTaskService_WrapsStoreErrors(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, discardLogger())
	ctx := context.Background()
	id := bson.NewObjectID()
	boom := errors.New("server selection timeout")

	tasks.On("Find", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	tasks.On("FindByID", ctx, id).Return(nil, boom)
	tasks.On("UpdateByID", ctx, id, mock.Anything).Return(nil, boom)
	tasks.On("DeleteByID", ctx, id).Return(nil, boom)

	_, err := svc.ListTasks(ctx, models.TaskFilter{})
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, boom)

	_, err = svc.GetTask(ctx, id)
	assert.ErrorIs(t, err, ErrStore)

	_, err = svc.UpdateTask(ctx, id, models.TaskUpdate{})
	assert.ErrorIs(t, err, ErrStore)

	_, err = svc.DeleteTask(ctx, id)
	assert.ErrorIs(t, err, ErrStore)
}
