package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/piresc/swastha/internal/pkg/models"
)

// WorkerMemoryRepo keeps profiles in process memory
type WorkerMemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]*models.HealthProfile
}

// NewWorkerMemoryRepo creates an empty in-memory profile store
func NewWorkerMemoryRepo() *WorkerMemoryRepo {
	return &WorkerMemoryRepo{
		profiles: make(map[string]*models.HealthProfile),
	}
}

func (r *WorkerMemoryRepo) UpsertProfile(_ context.Context, profile *models.HealthProfile) error {
	p := *profile

	r.mu.Lock()
	r.profiles[p.UserID] = &p
	r.mu.Unlock()
	return nil
}

func (r *WorkerMemoryRepo) GetProfile(_ context.Context, userID string) (*models.HealthProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (r *WorkerMemoryRepo) ListProfiles(_ context.Context, limit, offset int) ([]*models.HealthProfile, error) {
	r.mu.RLock()
	all := make([]*models.HealthProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		cp := *p
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UserID < all[j].UserID
		}
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	if offset >= len(all) {
		return []*models.HealthProfile{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
