// Package memory is an in-process record store used for local runs
// (STORE_DRIVER=memory) and tests. Data is lost on restart.
package memory

import (
	"sync"
	"time"

	"github.com/oksasatya/securetask/internal/domain/entity"
)

// Store holds users and tasks behind one lock so admin listings can join them.
type Store struct {
	mu      sync.RWMutex
	users   map[string]entity.User
	byEmail map[string]string
	tasks   map[string]entity.Task
	audit   []entity.AuditLog
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   map[string]entity.User{},
		byEmail: map[string]string{},
		tasks:   map[string]entity.Task{},
		now:     time.Now,
	}
}

func (s *Store) Users() *UserRepository  { return &UserRepository{s: s} }
func (s *Store) Tasks() *TaskRepository  { return &TaskRepository{s: s} }
func (s *Store) Audit() *AuditRepository { return &AuditRepository{s: s} }
