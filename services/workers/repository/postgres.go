package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/piresc/swastha/internal/pkg/database"
	"github.com/piresc/swastha/internal/pkg/models"
)

// foreignKeyViolation is the SQLSTATE raised when the profile's user row is missing
const foreignKeyViolation = "23503"

const profileColumns = `user_id, phone, full_name, age, gender, address, native_state,
		blood_group, marital_status, language, financial_status, allergies, conditions, updated_at`

// WorkerPostgresRepo stores profiles in the health_profiles table
type WorkerPostgresRepo struct {
	db *sqlx.DB
}

// NewWorkerPostgresRepo creates a profile repository on the given connection
func NewWorkerPostgresRepo(client *database.PostgresClient) *WorkerPostgresRepo {
	return &WorkerPostgresRepo{db: client.GetDB()}
}

// UpsertProfile inserts the profile or replaces the stored one for the same
// worker. A token whose user row no longer exists yields models.ErrUnauthorized.
func (r *WorkerPostgresRepo) UpsertProfile(ctx context.Context, profile *models.HealthProfile) error {
	query := `
		INSERT INTO health_profiles (` + profileColumns + `)
		VALUES (:user_id, :phone, :full_name, :age, :gender, :address, :native_state,
			:blood_group, :marital_status, :language, :financial_status, :allergies, :conditions, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			address = EXCLUDED.address,
			native_state = EXCLUDED.native_state,
			blood_group = EXCLUDED.blood_group,
			marital_status = EXCLUDED.marital_status,
			language = EXCLUDED.language,
			financial_status = EXCLUDED.financial_status,
			allergies = EXCLUDED.allergies,
			conditions = EXCLUDED.conditions,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: user %s no longer exists", models.ErrUnauthorized, profile.UserID)
		}
		return fmt.Errorf("failed to upsert health profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the profile for userID
func (r *WorkerPostgresRepo) GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM health_profiles WHERE user_id = $1`

	var profile models.HealthProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get health profile: %w", err)
	}
	return &profile, nil
}

// ListProfiles returns a page of profiles, most recently updated first
func (r *WorkerPostgresRepo) ListProfiles(ctx context.Context, limit, offset int) ([]*models.HealthProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM health_profiles
		ORDER BY updated_at DESC, user_id
		LIMIT $1 OFFSET $2`

	profiles := []*models.HealthProfile{}
	if err := r.db.SelectContext(ctx, &profiles, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list health profiles: %w", err)
	}
	return profiles, nil
}
