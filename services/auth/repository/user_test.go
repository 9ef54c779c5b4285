package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/swastha/internal/pkg/database"
	"github.com/piresc/swastha/internal/pkg/models"
)

func candidateUser(phone string, role models.Role) *models.User {
	return &models.User{
		ID:    models.NewUserID(role, phone),
		Role:  role,
		Phone: phone,
	}
}

func TestUserMemoryRepo_FindOrCreateUser(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMemoryRepo()
	phone := "+919876543210"

	first, created, err := repo.FindOrCreateUser(ctx, candidateUser(phone, models.RoleWorker))
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.CreatedAt.IsZero())

	second, created, err := repo.FindOrCreateUser(ctx, candidateUser(phone, models.RoleWorker))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	doctor, created, err := repo.FindOrCreateUser(ctx, candidateUser(phone, models.RoleDoctor))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, doctor.ID)
	assert.Equal(t, models.RoleDoctor, doctor.Role)
}

func TestUserMemoryRepo_ConcurrentCreateInsertsOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMemoryRepo()

	var (
		mu      sync.Mutex
		inserts int
		ids     = map[string]struct{}{}
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, created, err := repo.FindOrCreateUser(ctx, candidateUser("+919876543210", models.RoleWorker))
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if created {
				inserts++
			}
			ids[u.ID] = struct{}{}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserts)
	assert.Len(t, ids, 1)
}

func setupUserPostgresRepoTest(t *testing.T) (*UserPostgresRepo, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return NewUserPostgresRepo(database.NewPostgresClientFromDB(sqlxDB)), mock
}

func TestUserPostgresRepo_FindOrCreateUser(t *testing.T) {
	phone := "+919876543210"
	user := candidateUser(phone, models.RoleWorker)
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	columns := []string{"id", "role", "phone", "created_at"}

	testCases := []struct {
		name        string
		mockSetup   func(mock sqlmock.Sqlmock)
		wantCreated bool
		wantErr     string
	}{
		{
			name: "Success - inserted",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users").
					WithArgs(user.ID, "worker", phone, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT (.+) FROM users WHERE phone").
					WithArgs(phone, "worker").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(user.ID, "worker", phone, createdAt))
			},
			wantCreated: true,
		},
		{
			name: "Success - already exists",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users").
					WithArgs(user.ID, "worker", phone, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT (.+) FROM users WHERE phone").
					WithArgs(phone, "worker").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(user.ID, "worker", phone, createdAt))
			},
			wantCreated: false,
		},
		{
			name: "Error - insert fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: "failed to insert user",
		},
		{
			name: "Error - select fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT (.+) FROM users WHERE phone").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: "failed to get user",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := setupUserPostgresRepoTest(t)
			tc.mockSetup(mock)

			got, created, err := repo.FindOrCreateUser(context.Background(), user)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantCreated, created)
				assert.Equal(t, user.ID, got.ID)
				assert.Equal(t, models.RoleWorker, got.Role)
				assert.Equal(t, phone, got.Phone)
				assert.True(t, createdAt.Equal(got.CreatedAt))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
