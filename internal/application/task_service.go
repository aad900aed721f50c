package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/domain/entity"
	repo "github.com/oksasatya/securetask/internal/domain/repository"
	"github.com/oksasatya/securetask/pkg/helpers"
)

// TaskService applies ownership scoping: every read or write is constrained
// to tasks owned by the calling identity, admins included. A task owned by
// someone else is reported exactly like a missing one.
type TaskService struct {
	Tasks  repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, logger *logrus.Logger) *TaskService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &TaskService{Tasks: tasks, Logger: logger}
}

type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput applies only the fields that are non-nil.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

func (s *TaskService) Create(ctx context.Context, id entity.Identity, in CreateTaskInput) (*entity.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr := newValidationError()
		verr.add("title", "is required")
		return nil, verr
	}
	t := &entity.Task{
		Title:       title,
		Description: in.Description,
		Status:      entity.DefaultTaskStatus,
		OwnerID:     id.UserID,
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{"task_id": t.ID, "owner_id": t.OwnerID}).Debug("task created")
	return t, nil
}

func (s *TaskService) ListOwn(ctx context.Context, id entity.Identity) ([]entity.Task, error) {
	tasks, err := s.Tasks.ListByOwner(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id entity.Identity, taskID string, in UpdateTaskInput) (*entity.Task, error) {
	if !validTaskID(taskID) {
		return nil, ErrTaskNotFound
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		verr := newValidationError()
		verr.add("title", "must not be empty")
		return nil, verr
	}

	t, err := s.Tasks.GetOwned(ctx, taskID, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound, "load task")
	}
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if err := s.Tasks.UpdateOwned(ctx, t); err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound, "update task")
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id entity.Identity, taskID string) error {
	if !validTaskID(taskID) {
		return ErrTaskNotFound
	}
	if err := s.Tasks.DeleteOwned(ctx, taskID, id.UserID); err != nil {
		return notFoundAs(err, ErrTaskNotFound, "delete task")
	}
	s.Logger.WithFields(logrus.Fields{"task_id": taskID, "owner_id": id.UserID}).Debug("task deleted")
	return nil
}

// Task ids are UUIDs; anything else cannot exist.
func validTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFoundAs(err, target error, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return target
	}
	return fmt.Errorf("%s: %w", op, err)
}
