package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/piresc/swastha/internal/pkg/database"
	"github.com/piresc/swastha/internal/pkg/models"
)

const (
	insertUserQuery = `
		INSERT INTO users (id, role, phone, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone, role) DO NOTHING
	`
	selectUserQuery = `
		SELECT id, role, phone, created_at
		FROM users
		WHERE phone = $1 AND role = $2
	`
)

// UserPostgresRepo stores identities in the users table
type UserPostgresRepo struct {
	db   *sqlx.DB
	nowF func() time.Time
}

// NewUserPostgresRepo creates a user repository on the given connection
func NewUserPostgresRepo(client *database.PostgresClient) *UserPostgresRepo {
	return &UserPostgresRepo{
		db:   client.GetDB(),
		nowF: time.Now,
	}
}

// FindOrCreateUser inserts candidate unless (phone, role) already exists and
// returns the stored row. The unique constraint decides races between callers.
func (r *UserPostgresRepo) FindOrCreateUser(ctx context.Context, candidate *models.User) (*models.User, bool, error) {
	createdAt := candidate.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.nowF().UTC()
	}

	res, err := r.db.ExecContext(ctx, insertUserQuery,
		candidate.ID,
		string(candidate.Role),
		candidate.Phone,
		createdAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read insert result: %w", err)
	}

	var user models.User
	if err := r.db.GetContext(ctx, &user, selectUserQuery, candidate.Phone, string(candidate.Role)); err != nil {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, affected == 1, nil
}
