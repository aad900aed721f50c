package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/internal/domain/repository"
)

// TaskRepository scopes single-task statements with "AND owner_id = $n".
type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.status, t.owner_id, t.created_at, t.updated_at`

func scanTask(row pgx.Row, t *entity.Task) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.Status, t.OwnerID)

	return mapErr(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC, t.id
	`, ownerID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Task{}
	for rows.Next() {
		var t entity.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	t := &entity.Task{}
	row := r.db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.id = $1 AND t.owner_id = $2
	`, id, ownerID)
	if err := scanTask(row, t); err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (r *TaskRepository) UpdateOwned(ctx context.Context, t *entity.Task) error {
	row := r.db.QueryRow(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = now()
		WHERE id = $4 AND owner_id = $5
		RETURNING updated_at
	`, t.Title, t.Description, t.Status, t.ID, t.OwnerID)

	return mapErr(row.Scan(&t.UpdatedAt))
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]entity.TaskWithOwner, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+`, u.name, u.email, u.role
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		ORDER BY t.created_at DESC, t.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.TaskWithOwner{}
	for rows.Next() {
		var item entity.TaskWithOwner
		var role string
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Status, &item.OwnerID, &item.CreatedAt, &item.UpdatedAt,
			&item.Owner.Name, &item.Owner.Email, &role,
		); err != nil {
			return nil, err
		}
		item.Owner.ID = item.OwnerID
		item.Owner.Role = entity.Role(role)
		out = append(out, item)
	}
	return out, rows.Err()
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
