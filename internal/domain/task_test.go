package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	tests := []struct {
		name     string
		owner    uuid.UUID
		taskName string
		wantErr  error
	}{
		{
			name:     "valid task",
			owner:    owner,
			taskName: "Buy milk",
			wantErr:  nil,
		},
		{
			name:     "empty name",
			owner:    owner,
			taskName: "",
			wantErr:  ErrEmptyTaskName,
		},
		{
			name:     "whitespace-only name",
			owner:    owner,
			taskName: "   ",
			wantErr:  ErrEmptyTaskName,
		},
		{
			name:     "missing owner",
			owner:    uuid.Nil,
			taskName: "Buy milk",
			wantErr:  ErrEmptyTaskOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tt.owner, tt.taskName)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, task)
			assert.Equal(t, DefaultTaskState, task.State)
			assert.Equal(t, tt.owner, task.UserID)
			assert.NotEqual(t, uuid.Nil, task.ID)
		})
	}
}

func TestTaskIsOwnedBy(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	task, err := NewTask(owner, "Buy milk")
	require.NoError(t, err)

	assert.True(t, task.IsOwnedBy(owner))
	assert.False(t, task.IsOwnedBy(uuid.New()))
}
