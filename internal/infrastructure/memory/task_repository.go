package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/internal/domain/repository"
)

type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.tasks[t.ID] = *t
	return nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID string) ([]entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []entity.Task{}
	for _, t := range r.s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (r *TaskRepository) GetOwned(_ context.Context, id, ownerID string) (*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

// UpdateOwned writes title, description and status; the stored owner is kept.
func (r *TaskRepository) UpdateOwned(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.tasks[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return repository.ErrNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Status = t.Status
	cur.UpdatedAt = r.s.now()
	r.s.tasks[t.ID] = cur
	*t = cur
	return nil
}

func (r *TaskRepository) DeleteOwned(_ context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskRepository) ListAll(_ context.Context) ([]entity.TaskWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]entity.Task, 0, len(r.s.tasks))
	for _, t := range r.s.tasks {
		tasks = append(tasks, t)
	}
	sortTasks(tasks)

	out := make([]entity.TaskWithOwner, 0, len(tasks))
	for _, t := range tasks {
		item := entity.TaskWithOwner{Task: t, Owner: entity.UserSummary{ID: t.OwnerID}}
		if u, ok := r.s.users[t.OwnerID]; ok {
			item.Owner = u.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}

func sortTasks(ts []entity.Task) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].ID < ts[j].ID
		}
		return ts[i].CreatedAt.After(ts[j].CreatedAt)
	})
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
