package workers

import (
	"context"

	"github.com/piresc/swastha/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/swastha/services/workers WorkerUC

// WorkerUC manages worker health profiles
type WorkerUC interface {
	// worker self service
	UpsertProfile(ctx context.Context, userID, phone string, input *models.HealthProfile) (*models.HealthProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error)

	// doctor lookups
	ListProfiles(ctx context.Context, limit, offset int) (*models.WorkerListResult, error)
}
