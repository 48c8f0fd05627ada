package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navneet-kaur7/todo-app/internal/model"
	"github.com/Navneet-kaur7/todo-app/internal/repository"
	"github.com/Navneet-kaur7/todo-app/internal/repository/repotest"
)

type taskFixture struct {
	svc   *TaskService
	clock time.Time
	alice string
	bob   string
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	db := repotest.NewDB(t)
	users := repository.NewUserRepository(db)

	f := &taskFixture{
		svc:   NewTaskService(repository.NewTaskRepository(db)),
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}

	for _, id := range []*string{&f.alice, &f.bob} {
		user := &model.User{
			ID:           uuid.NewString(),
			Name:         "User",
			Email:        uuid.NewString() + "@example.com",
			PasswordHash: "hash",
			CreatedAt:    f.clock,
			UpdatedAt:    f.clock,
		}
		require.NoError(t, users.Create(context.Background(), user))
		*id = user.ID
	}

	return f
}

func (f *taskFixture) create(t *testing.T, owner, text string) model.TaskResponse {
	t.Helper()

	task, err := f.svc.CreateTask(context.Background(), owner, model.CreateTaskRequest{Text: text})
	require.NoError(t, err)

	return task
}

func TestCreateTask(t *testing.T) {
	f := newTaskFixture(t)

	task := f.create(t, f.alice, "  Buy milk  ")

	assert.Equal(t, "Buy milk", task.Text)
	assert.False(t, task.Completed)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	_, err := uuid.Parse(task.ID)
	assert.NoError(t, err)
}

func TestCreateTask_InvalidText(t *testing.T) {
	f := newTaskFixture(t)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", " \t\n"},
		{"too long", strings.Repeat("x", MaxTaskTextLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateTask(context.Background(), f.alice, model.CreateTaskRequest{Text: tt.text})

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "text", verr.Field)
		})
	}

	tasks, err := f.svc.ListTasks(context.Background(), f.alice)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTask_MaxLengthCountsCharacters(t *testing.T) {
	f := newTaskFixture(t)

	task := f.create(t, f.alice, strings.Repeat("é", MaxTaskTextLength))

	assert.Len(t, []rune(task.Text), MaxTaskTextLength)
}

func TestListTasks(t *testing.T) {
	f := newTaskFixture(t)

	first := f.create(t, f.alice, "first")
	second := f.create(t, f.alice, "second")
	f.create(t, f.bob, "bob's task")

	tasks, err := f.svc.ListTasks(context.Background(), f.alice)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)

	empty, err := f.svc.ListTasks(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetTask_OtherOwner(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, f.alice, "private")

	got, err := f.svc.GetTask(context.Background(), f.alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	_, err = f.svc.GetTask(context.Background(), f.bob, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = f.svc.GetTask(context.Background(), f.alice, uuid.NewString())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateTask(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "Buy milk")

	done := true
	updated, err := f.svc.UpdateTask(ctx, f.alice, task.ID, model.UpdateTaskRequest{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Text)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	text := " Buy oat milk "
	updated, err = f.svc.UpdateTask(ctx, f.alice, task.ID, model.UpdateTaskRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Text)
	assert.True(t, updated.Completed)
}

func TestUpdateTask_Invalid(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "Buy milk")

	var verr *ValidationError

	_, err := f.svc.UpdateTask(ctx, f.alice, task.ID, model.UpdateTaskRequest{})
	assert.ErrorAs(t, err, &verr)

	blank := "   "
	_, err = f.svc.UpdateTask(ctx, f.alice, task.ID, model.UpdateTaskRequest{Text: &blank})
	assert.ErrorAs(t, err, &verr)

	got, err := f.svc.GetTask(ctx, f.alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestUpdateTask_OtherOwner(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "mine")

	done := true
	_, err := f.svc.UpdateTask(ctx, f.bob, task.ID, model.UpdateTaskRequest{Completed: &done})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	got, err := f.svc.GetTask(ctx, f.alice, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestDeleteTask(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "temporary")

	assert.ErrorIs(t, f.svc.DeleteTask(ctx, f.bob, task.ID), ErrTaskNotFound)
	require.NoError(t, f.svc.DeleteTask(ctx, f.alice, task.ID))
	assert.ErrorIs(t, f.svc.DeleteTask(ctx, f.alice, task.ID), ErrTaskNotFound)

	_, err := f.svc.GetTask(ctx, f.alice, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteCompleted(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	done := true

	for _, text := range []string{"a", "b", "c"} {
		task := f.create(t, f.alice, text)
		if text != "c" {
			_, err := f.svc.UpdateTask(ctx, f.alice, task.ID, model.UpdateTaskRequest{Completed: &done})
			require.NoError(t, err)
		}
	}
	bobTask := f.create(t, f.bob, "bob's")
	_, err := f.svc.UpdateTask(ctx, f.bob, bobTask.ID, model.UpdateTaskRequest{Completed: &done})
	require.NoError(t, err)

	resp, err := f.svc.DeleteCompleted(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)

	resp, err = f.svc.DeleteCompleted(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Count)

	remaining, err := f.svc.ListTasks(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].Text)

	_, err = f.svc.GetTask(ctx, f.bob, bobTask.ID)
	assert.NoError(t, err)
}
