package workers

import (
	"context"

	"github.com/piresc/swastha/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/swastha/services/workers WorkerRepo

// WorkerRepo stores one health profile per worker
type WorkerRepo interface {
	UpsertProfile(ctx context.Context, profile *models.HealthProfile) error
	// GetProfile returns models.ErrNotFound when userID has no profile
	GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error)
	// ListProfiles returns profiles newest first
	ListProfiles(ctx context.Context, limit, offset int) ([]*models.HealthProfile, error)
}
