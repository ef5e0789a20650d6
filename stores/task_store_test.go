package stores

import (
	"testing"
	"time"

	"github.com/princinho/taskbackend/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBuildTaskFilter(t *testing.T) {
	due := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter models.TaskFilter
		want   bson.M
	}{
		{
			name:   "empty filter matches everything",
			filter: models.TaskFilter{Limit: 10, Page: 1},
			want:   bson.M{},
		},
		{
			name:   "status only",
			filter: models.TaskFilter{Status: models.TaskStatusNew},
			want:   bson.M{"status": models.TaskStatusNew},
		},
		{
			name: "all fields",
			filter: models.TaskFilter{
				Status:   models.TaskStatusCompleted,
				Priority: models.TaskPriorityHigh,
				DueDate:  &due,
			},
			want: bson.M{
				"status":   models.TaskStatusCompleted,
				"priority": models.TaskPriorityHigh,
				"dueDate":  bson.M{"$lte": due},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTaskFilter(tt.filter))
		})
	}
}

func TestBuildTaskUpdate(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("only updatedAt when nothing is set", func(t *testing.T) {
		got := BuildTaskUpdate(models.TaskUpdate{}, now)
		assert.Equal(t, bson.M{"$set": bson.M{"updatedAt": now}}, got)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		title := "New title"
		status := models.TaskStatusInProgress

		got := BuildTaskUpdate(models.TaskUpdate{Title: &title, Status: &status}, now)
		assert.Equal(t, bson.M{"$set": bson.M{
			"updatedAt": now,
			"title":     "New title",
			"status":    models.TaskStatusInProgress,
		}}, got)
	})

	t.Run("every field", func(t *testing.T) {
		title, desc := "t", ""
		status := models.TaskStatusCompleted
		priority := models.TaskPriorityLow
		due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		got := BuildTaskUpdate(models.TaskUpdate{
			Title:       &title,
			Description: &desc,
			Status:      &status,
			Priority:    &priority,
			DueDate:     &due,
		}, now)

		set := got["$set"].(bson.M)
		assert.Len(t, set, 6)
		assert.Equal(t, "", set["description"])
		assert.Equal(t, due, set["dueDate"])
	})
	t.Run("clearing the due date unsets it", func(t *testing.T) {
		due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		got := BuildTaskUpdate(models.TaskUpdate{DueDate: &due, ClearDueDate: true}, now)
		assert.Equal(t, bson.M{
			"$set":   bson.M{"updatedAt": now},
			"$unset": bson.M{"dueDate": ""},
		}, got)
	})
}
