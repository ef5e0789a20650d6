package controllers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/taskbackend/dto"
	"github.com/princinho/taskbackend/models"
	"github.com/princinho/taskbackend/services"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type TaskService interface {
	CreateTask(ctx context.Context, in models.NewTask) (*models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, id bson.ObjectID) (*models.Task, error)
	UpdateTask(ctx context.Context, id bson.ObjectID, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id bson.ObjectID) (*models.Task, error)
}

type TaskController struct {
	tasks   TaskService
	timeout time.Duration
	log     *slog.Logger
}

func NewTaskController(tasks TaskService, timeout time.Duration, log *slog.Logger) *TaskController {
	return &TaskController{tasks: tasks, timeout: timeout, log: log}
}

// POST /task
func (tc *TaskController) CreateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateTaskDTO
		if !bindJSON(c, &body, false) {
			return
		}

		in, err := body.ToNewTask()
		if err != nil {
			respondDueDateError(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), tc.timeout)
		defer cancel()

		task, err := tc.tasks.CreateTask(ctx, in)
		if err != nil {
			tc.internalError(c, "create task failed", err)
			return
		}

		respond(c, messages.Success, task)
	}
}

// GET /task
func (tc *TaskController) GetTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query dto.ListTasksQuery
		if !bindQuery(c, &query) {
			return
		}

		filter, err := query.ToFilter(services.DefaultTaskLimit, services.DefaultTaskPage)
		if err != nil {
			respondDueDateError(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), tc.timeout)
		defer cancel()

		tasks, err := tc.tasks.ListTasks(ctx, filter)
		if err != nil {
			tc.internalError(c, "list tasks failed", err)
			return
		}

		respond(c, messages.Success, tasks)
	}
}

// GET /task/:id
func (tc *TaskController) GetTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), tc.timeout)
		defer cancel()

		task, err := tc.tasks.GetTask(ctx, id)
		if err != nil {
			tc.internalError(c, "get task failed", err)
			return
		}
		if task == nil {
			respondError(c, messages.NotFound, nil)
			return
		}

		respond(c, messages.Success, task)
	}
}

// PUT /task/:id
func (tc *TaskController) UpdateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var body dto.UpdateTaskDTO
		if !bindJSON(c, &body, true) {
			return
		}

		update, err := body.ToTaskUpdate()
		if err != nil {
			respondDueDateError(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), tc.timeout)
		defer cancel()

		task, err := tc.tasks.UpdateTask(ctx, id, update)
		if err != nil {
			tc.internalError(c, "update task failed", err)
			return
		}
		if task == nil {
			respondError(c, messages.NotFound, nil)
			return
		}

		respond(c, messages.Success, task)
	}
}

// DELETE /task/:id
func (tc *TaskController) DeleteTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), tc.timeout)
		defer cancel()

		task, err := tc.tasks.DeleteTask(ctx, id)
		if err != nil {
			tc.internalError(c, "delete task failed", err)
			return
		}
		if task == nil {
			respondError(c, messages.NotFound, nil)
			return
		}

		respond(c, messages.Success, task)
	}
}

// parseID rejects anything that is not a 24-character hex ObjectID.
func parseID(c *gin.Context) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, messages.InvalidID, nil)
		return bson.ObjectID{}, false
	}
	return id, true
}

func respondDueDateError(c *gin.Context) {
	respondError(c, messages.ValidationError, []FieldError{{
		Field:   "dueDate",
		Rule:    "isodate",
		Message: validationMessage("isodate", ""),
	}})
}

func (tc *TaskController) internalError(c *gin.Context, msg string, err error) {
	tc.log.ErrorContext(c.Request.Context(), msg, "err", err, "request_id", requestIDFrom(c))
	respondError(c, messages.ServerError, nil)
}
