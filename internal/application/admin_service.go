package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/domain/entity"
	repo "github.com/oksasatya/securetask/internal/domain/repository"
	"github.com/oksasatya/securetask/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// AdminService is read-only oversight across all owners.
type AdminService struct {
	Users  repo.UserRepository
	Tasks  repo.TaskRepository
	Index  UserIndex
	Logger *logrus.Logger
}

func NewAdminService(users repo.UserRepository, tasks repo.TaskRepository, index UserIndex, logger *logrus.Logger) *AdminService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AdminService{Users: users, Tasks: tasks, Index: index, Logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]entity.UserSummary, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func (s *AdminService) ListTasks(ctx context.Context) ([]entity.TaskWithOwner, error) {
	tasks, err := s.Tasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	if tasks == nil {
		tasks = []entity.TaskWithOwner{}
	}
	return tasks, nil
}

// SearchUsers queries the user index. Without an index it returns no hits.
func (s *AdminService) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []entity.UserSummary{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	hits, err := s.Index.SearchUsers(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if hits == nil {
		hits = []entity.UserSummary{}
	}
	return hits, nil
}
