package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus    `bson:"status" json:"status"`
	Priority    TaskPriority  `bson:"priority" json:"priority"`
	DueDate     *time.Time    `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// NewTask carries the caller-supplied fields of a task about to be created.
type NewTask struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

// TaskUpdate is a partial update: nil fields are left untouched.
// ClearDueDate removes the due date and wins over DueDate.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskFilter narrows a task listing. Empty fields do not constrain the query;
// DueDate matches tasks due on or before it.
type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
	DueDate  *time.Time
	Limit    int
	Page     int
}
