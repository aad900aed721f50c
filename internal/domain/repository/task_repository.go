package repository

import (
	"context"

	"github.com/oksasatya/securetask/internal/domain/entity"
)

// TaskRepository stores tasks. Every method that reads or mutates a single
// task takes the owner id and matches on it together with the task id, so a
// task owned by someone else is indistinguishable from a missing one.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	GetOwned(ctx context.Context, id, ownerID string) (*entity.Task, error)
	UpdateOwned(ctx context.Context, t *entity.Task) error
	DeleteOwned(ctx context.Context, id, ownerID string) error

	// ListAll is unscoped and reserved for admin oversight.
	ListAll(ctx context.Context) ([]entity.TaskWithOwner, error)
}
