package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, name, email string, role domain.Role) *domain.Account {
	t.Helper()
	a := &domain.Account{FullName: name, Email: email, PhoneNumber: "9876543210", PasswordHash: "hashed_secret1", Role: role}
	require.NoError(t, NewAccountRepository(db).Create(context.Background(), a))
	return a
}

func TestAccountRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupData     func(db *gorm.DB)
		account       *domain.Account
		expectedError error
	}{
		{
			name:    "new account",
			account: &domain.Account{FullName: "Asha", Email: "Asha@Example.com ", Role: domain.RoleRoomFinder},
		},
		{
			name: "duplicate email ignores case",
			setupData: func(db *gorm.DB) {
				seedAccount(t, db, "Asha", "asha@example.com", domain.RoleRoomFinder)
			},
			account:       &domain.Account{FullName: "Asha Two", Email: "ASHA@example.com", Role: domain.RoleRoomFinder},
			expectedError: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			if tt.setupData != nil {
				tt.setupData(db)
			}
			repo := NewAccountRepository(db)

			err := repo.Create(context.Background(), tt.account)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, tt.account.ID)
			assert.Equal(t, "asha@example.com", tt.account.Email)
			assert.False(t, tt.account.CreatedAt.IsZero())
		})
	}
}

func TestAccountRepositoryImpl_Find(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()
	seeded := seedAccount(t, db, "Ravi", "ravi@example.com", domain.RolePGOwner)

	byEmail, err := repo.FindByEmail(ctx, " RAVI@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)
	assert.Equal(t, domain.RolePGOwner, byEmail.Role)
	assert.Equal(t, "hashed_secret1", byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", byID.FullName)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAccountRepositoryImpl_MarkEmailVerified(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()
	a := seedAccount(t, db, "Asha", "asha@example.com", domain.RoleRoomFinder)
	assert.False(t, a.EmailVerified)

	require.NoError(t, repo.MarkEmailVerified(ctx, a.ID))
	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)

	assert.ErrorIs(t, repo.MarkEmailVerified(ctx, 999), domain.ErrUserNotFound)
}
