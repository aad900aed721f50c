package repository

import (
	"context"

	"github.com/oksasatya/securetask/internal/domain/entity"
)

type AuditRepository interface {
	Insert(ctx context.Context, e entity.AuditLog) error
}
