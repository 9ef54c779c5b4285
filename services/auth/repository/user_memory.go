package repository

import (
	"context"
	"sync"
	"time"

	"github.com/piresc/swastha/internal/pkg/models"
)

type userKey struct {
	phone string
	role  models.Role
}

// UserMemoryRepo keeps identities in process memory
type UserMemoryRepo struct {
	mu    sync.Mutex
	users map[userKey]*models.User
	nowF  func() time.Time
}

// NewUserMemoryRepo creates an empty in-memory user store
func NewUserMemoryRepo() *UserMemoryRepo {
	return &UserMemoryRepo{
		users: make(map[userKey]*models.User),
		nowF:  time.Now,
	}
}

// FindOrCreateUser returns the user for (phone, role), storing candidate if absent
func (r *UserMemoryRepo) FindOrCreateUser(_ context.Context, candidate *models.User) (*models.User, bool, error) {
	key := userKey{phone: candidate.Phone, role: candidate.Role}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[key]; ok {
		u := *existing
		return &u, false, nil
	}

	stored := *candidate
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.nowF().UTC()
	}
	r.users[key] = &stored

	u := stored
	return &u, true, nil
}
