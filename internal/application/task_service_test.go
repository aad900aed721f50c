package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/internal/infrastructure/memory"
)

var (
	ann   = entity.Identity{UserID: "ann-id", Role: entity.RoleUser}
	bob   = entity.Identity{UserID: "bob-id", Role: entity.RoleUser}
	admin = entity.Identity{UserID: "admin-id", Role: entity.RoleAdmin}
)

func strp(s string) *string { return &s }

func newTasks() *TaskService {
	return NewTaskService(memory.NewStore().Tasks(), nil)
}

func TestTaskCreate_SetsOwnerAndDefaultStatus(t *testing.T) {
	svc := newTasks()
	task, err := svc.Create(context.Background(), ann, CreateTaskInput{Title: "  Buy milk ", Description: "2%"})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.Equal(t, entity.DefaultTaskStatus, task.Status)
	assert.Equal(t, ann.UserID, task.OwnerID)
	_, err = uuid.Parse(task.ID)
	assert.NoError(t, err)
}

func TestTaskCreate_RequiresTitle(t *testing.T) {
	svc := newTasks()
	_, err := svc.Create(context.Background(), ann, CreateTaskInput{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskListOwn_Scoped(t *testing.T) {
	svc := newTasks()
	ctx := context.Background()
	_, err := svc.Create(ctx, ann, CreateTaskInput{Title: "a1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ann, CreateTaskInput{Title: "a2"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, CreateTaskInput{Title: "b1"})
	require.NoError(t, err)

	own, err := svc.ListOwn(ctx, ann)
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, task := range own {
		assert.Equal(t, ann.UserID, task.OwnerID)
	}

	none, err := svc.ListOwn(ctx, admin)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTaskUpdate_PartialFields(t *testing.T) {
	svc := newTasks()
	ctx := context.Background()
	task, err := svc.Create(ctx, ann, CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, ann, task.ID, UpdateTaskInput{Status: strp("in-progress")})
	require.NoError(t, err)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, "d", updated.Description)
	assert.Equal(t, "in-progress", updated.Status)
	assert.Equal(t, ann.UserID, updated.OwnerID)

	updated, err = svc.Update(ctx, ann, task.ID, UpdateTaskInput{Title: strp("new"), Description: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "in-progress", updated.Status)

	_, err = svc.Update(ctx, ann, task.ID, UpdateTaskInput{Title: strp(" ")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskOwnership_NotOwnedLooksAbsent(t *testing.T) {
	svc := newTasks()
	ctx := context.Background()
	task, err := svc.Create(ctx, ann, CreateTaskInput{Title: "ann's"})
	require.NoError(t, err)

	for _, who := range []entity.Identity{bob, admin} {
		_, err = svc.Update(ctx, who, task.ID, UpdateTaskInput{Title: strp("mine now")})
		assert.ErrorIs(t, err, ErrTaskNotFound)
		err = svc.Delete(ctx, who, task.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	}

	_, err = svc.Update(ctx, bob, uuid.NewString(), UpdateTaskInput{Status: strp("x")})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, "not-a-uuid"), ErrTaskNotFound)

	own, err := svc.ListOwn(ctx, ann)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "ann's", own[0].Title)
}

func TestTaskDelete(t *testing.T) {
	svc := newTasks()
	ctx := context.Background()
	task, err := svc.Create(ctx, ann, CreateTaskInput{Title: "t"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ann, task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, ann, task.ID), ErrTaskNotFound)
}
