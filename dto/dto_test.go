package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDate(t *testing.T) {
	tests := []struct {
		body      string
		wantSet   bool
		wantNull  bool
		wantValue string
	}{
		{`{}`, false, false, ""},
		{`{"dueDate":null}`, true, true, ""},
		{`{"dueDate":""}`, true, false, ""},
		{`{"dueDate":"2024-07-01"}`, true, false, "2024-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var d UpdateTaskDTO
			require.NoError(t, json.Unmarshal([]byte(tt.body), &d))
			assert.Equal(t, tt.wantSet, d.DueDate.Set)
			assert.Equal(t, tt.wantNull, d.DueDate.Null)
			assert.Equal(t, tt.wantValue, d.DueDate.Value)
		})
	}
}

func TestToTaskUpdate_DueDate(t *testing.T) {
	u, err := UpdateTaskDTO{DueDate: OptionalDate{Set: true, Null: true}}.ToTaskUpdate()
	require.NoError(t, err)
	assert.True(t, u.ClearDueDate)

	u, err = UpdateTaskDTO{}.ToTaskUpdate()
	require.NoError(t, err)
	assert.False(t, u.ClearDueDate)
	assert.Nil(t, u.DueDate)

	_, err = UpdateTaskDTO{DueDate: OptionalDate{Set: true, Value: "soon"}}.ToTaskUpdate()
	assert.Error(t, err)
}

func TestCredentialsNormalize(t *testing.T) {
	d := CredentialsDTO{Username: "  abc  ", Password: "  keep spaces  "}
	d.Normalize()
	assert.Equal(t, "abc", d.Username)
	assert.Equal(t, "  keep spaces  ", d.Password)
}
