package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oksasatya/securetask/internal/domain/entity"
)

// plainHasher is a reversible stand-in for bcrypt that still counts calls.
type plainHasher struct {
	mu       sync.Mutex
	verifies int
}

func (h *plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (h *plainHasher) Verify(hash, plain string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return hash == "hashed:"+plain
}

type fakeTokens struct {
	err error
}

func (f fakeTokens) GenerateAccessToken(userID string, role entity.Role) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-for-" + userID + "-" + string(role), time.Unix(1700000000, 0), nil
}

type fakePublisher struct {
	err  error
	jobs []any
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

type fakeIndex struct {
	err     error
	indexed []entity.UserSummary
	hits    []entity.UserSummary
	lastQ   string
	lastN   int
}

func (f *fakeIndex) IndexUser(_ context.Context, u entity.UserSummary) error {
	f.indexed = append(f.indexed, u)
	return f.err
}

func (f *fakeIndex) SearchUsers(_ context.Context, q string, size int) ([]entity.UserSummary, error) {
	f.lastQ, f.lastN = q, size
	return f.hits, f.err
}

var errStoreDown = errors.New("store down")

// brokenUsers fails every call.
type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *entity.User) error { return errStoreDown }
func (brokenUsers) GetByID(context.Context, string) (*entity.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) List(context.Context) ([]entity.User, error) { return nil, errStoreDown }
