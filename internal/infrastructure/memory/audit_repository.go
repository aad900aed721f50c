package memory

import (
	"context"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/internal/domain/repository"
)

type AuditRepository struct {
	s *Store
}

func (r *AuditRepository) Insert(_ context.Context, e entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.s.now()
	}
	r.s.audit = append(r.s.audit, e)
	return nil
}

// Entries returns a copy of the recorded audit log.
func (r *AuditRepository) Entries() []entity.AuditLog {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]entity.AuditLog(nil), r.s.audit...)
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
