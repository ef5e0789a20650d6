package dto

import (
	"encoding/json"
	"time"

	"github.com/princinho/taskbackend/models"
	"github.com/princinho/taskbackend/utils"
)

type CreateTaskDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof='new' 'in progress' 'completed'"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"dueDate" binding:"omitempty,isodate"`
}

func (d CreateTaskDTO) ToNewTask() (models.NewTask, error) {
	due, err := optionalDate(d.DueDate)
	if err != nil {
		return models.NewTask{}, err
	}
	return models.NewTask{
		Title:       d.Title,
		Description: d.Description,
		Status:      models.TaskStatus(d.Status),
		Priority:    models.TaskPriority(d.Priority),
		DueDate:     due,
	}, nil
}

// UpdateTaskDTO — all fields are optional pointers
type UpdateTaskDTO struct {
	Title       *string      `json:"title" binding:"omitnil,min=1"`
	Description *string      `json:"description"`
	Status      *string      `json:"status" binding:"omitnil,oneof='new' 'in progress' 'completed'"`
	Priority    *string      `json:"priority" binding:"omitnil,oneof=low medium high"`
	DueDate     OptionalDate `json:"dueDate"`
}

func (d UpdateTaskDTO) ToTaskUpdate() (models.TaskUpdate, error) {
	u := models.TaskUpdate{
		Title:       d.Title,
		Description: d.Description,
	}
	if d.Status != nil {
		s := models.TaskStatus(*d.Status)
		u.Status = &s
	}
	if d.Priority != nil {
		p := models.TaskPriority(*d.Priority)
		u.Priority = &p
	}
	if !d.DueDate.Set {
		return u, nil
	}
	if d.DueDate.Null || d.DueDate.Value == "" {
		u.ClearDueDate = true
		return u, nil
	}
	due, err := utils.ParseDate(d.DueDate.Value)
	if err != nil {
		return models.TaskUpdate{}, err
	}
	u.DueDate = &due
	return u, nil
}

// OptionalDate tells an absent field apart from an explicit null. Null and
// the empty string both mean "remove the due date".
type OptionalDate struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type ListTasksQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof='new' 'in progress' 'completed'"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate  string `form:"dueDate" binding:"omitempty,isodate"`
	Limit    string `form:"limit"`
	Page     string `form:"page"`
}

// ToFilter falls back to the default limit and page when they are missing or
// not numbers; clamping is left to the service.
func (q ListTasksQuery) ToFilter(defaultLimit, defaultPage int) (models.TaskFilter, error) {
	due, err := optionalDate(q.DueDate)
	if err != nil {
		return models.TaskFilter{}, err
	}
	return models.TaskFilter{
		Status:   models.TaskStatus(q.Status),
		Priority: models.TaskPriority(q.Priority),
		DueDate:  due,
		Limit:    utils.ParseIntDefault(q.Limit, defaultLimit),
		Page:     utils.ParseIntDefault(q.Page, defaultPage),
	}, nil
}

func optionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
