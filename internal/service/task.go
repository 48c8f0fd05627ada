package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Navneet-kaur7/todo-app/internal/model"
	"github.com/Navneet-kaur7/todo-app/internal/repository"
)

// MaxTaskTextLength is the longest task text accepted, in characters.
const MaxTaskTextLength = 500

// TaskStore is the ownership-scoped task persistence used by TaskService.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	GetByID(ctx context.Context, ownerID, taskID string) (*model.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch model.TaskPatch, at time.Time) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	DeleteCompleted(ctx context.Context, ownerID string) (int64, error)
}

// TaskService handles task business logic for an authenticated owner.
type TaskService struct {
	repo TaskStore
	now  func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ListTasks returns all tasks of ownerID, newest first.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]model.TaskResponse, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return tasksToResponse(tasks), nil
}

// GetTask returns one task of ownerID.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (model.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return model.TaskResponse{}, translateTaskErr(err)
	}

	return task.ToResponse(), nil
}

// CreateTask creates a new, not yet completed task for ownerID.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, req model.CreateTaskRequest) (model.TaskResponse, error) {
	text, err := normalizeText(req.Text)
	if err != nil {
		return model.TaskResponse{}, err
	}

	now := s.now()
	task := model.Task{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.ToResponse(), nil
}

// UpdateTask changes text and/or completion of a task of ownerID.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, req model.UpdateTaskRequest) (model.TaskResponse, error) {
	patch := model.TaskPatch{Completed: req.Completed}

	if req.Text != nil {
		text, err := normalizeText(*req.Text)
		if err != nil {
			return model.TaskResponse{}, err
		}
		patch.Text = &text
	}

	if patch.Empty() {
		return model.TaskResponse{}, invalid("", "nothing to update")
	}

	task, err := s.repo.Update(ctx, ownerID, taskID, patch, s.now())
	if err != nil {
		return model.TaskResponse{}, translateTaskErr(err)
	}

	return task.ToResponse(), nil
}

// DeleteTask removes a task of ownerID.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return translateTaskErr(s.repo.Delete(ctx, ownerID, taskID))
}

// DeleteCompleted removes all completed tasks of ownerID.
func (s *TaskService) DeleteCompleted(ctx context.Context, ownerID string) (model.DeleteCompletedResponse, error) {
	count, err := s.repo.DeleteCompleted(ctx, ownerID)
	if err != nil {
		return model.DeleteCompletedResponse{}, err
	}

	return model.DeleteCompletedResponse{Count: count}, nil
}

func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("text", "is required")
	}
	if utf8.RuneCountInString(text) > MaxTaskTextLength {
		return "", invalid("text", "must be at most 500 characters")
	}
	return text, nil
}

func translateTaskErr(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// tasksToResponse converts a slice of Task to a slice of TaskResponse.
func tasksToResponse(tasks []model.Task) []model.TaskResponse {
	result := make([]model.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = tasks[i].ToResponse()
	}
	return result
}
