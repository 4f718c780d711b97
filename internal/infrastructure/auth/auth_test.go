package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "messmilega", time.Hour)

	token, err := svc.GenerateAccessToken(42, domain.RolePGOwner)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, domain.RolePGOwner, claims.Role)
	assert.Equal(t, int64(3600), claims.ExpiresAt-claims.IssuedAt)

	other, err := svc.GenerateAccessToken(42, domain.RolePGOwner)
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "every token carries a unique id")
}

func TestJWTService_Rejections(t *testing.T) {
	svc := NewJWTService("test-secret", "messmilega", time.Hour)
	valid, err := svc.GenerateAccessToken(1, domain.RoleRoomFinder)
	require.NoError(t, err)

	expired := NewJWTService("test-secret", "messmilega", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateAccessToken(1, domain.RoleRoomFinder)
	require.NoError(t, err)

	foreign, err := NewJWTService("other-secret", "messmilega", time.Hour).GenerateAccessToken(1, domain.RoleRoomFinder)
	require.NoError(t, err)

	wrongIssuer, err := NewJWTService("test-secret", "someone-else", time.Hour).GenerateAccessToken(1, domain.RoleRoomFinder)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "role": "ADMIN", "iss": "messmilega",
		"iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{name: "garbage", token: "not-a-jwt", expected: domain.ErrTokenInvalid},
		{name: "expired", token: old, expected: domain.ErrTokenExpired},
		{name: "other secret", token: foreign, expected: domain.ErrTokenInvalid},
		{name: "other issuer", token: wrongIssuer, expected: domain.ErrTokenInvalid},
		{name: "unknown role", token: badRole, expected: domain.ErrTokenMalformed},
		{name: "tampered", token: valid + "x", expected: domain.ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, svc.Verify(hash, "secret1"))
	assert.False(t, svc.Verify(hash, "secret2"))
	assert.False(t, svc.Verify("not-a-hash", "secret1"))

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordServiceWithCost(99).cost)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestCasbinService(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewCasbinService(db)
	require.NoError(t, err)

	tests := []struct {
		name     string
		role     domain.Role
		path     string
		method   string
		expected bool
	}{
		{"owner dashboard", domain.RolePGOwner, domain.PathDashboard, "GET", true},
		{"owner decides booking", domain.RolePGOwner, "/api/bookings/17/status", "PUT", true},
		{"owner cannot request booking", domain.RolePGOwner, domain.PathBookRequest, "POST", false},
		{"finder requests booking", domain.RoleRoomFinder, domain.PathBookRequest, "POST", true},
		{"finder cannot decide booking", domain.RoleRoomFinder, "/api/bookings/17/status", "PUT", false},
		{"finder cannot list owner bookings", domain.RoleRoomFinder, domain.PathOwnerBooking, "GET", false},
		{"method must match", domain.RoleRoomFinder, domain.PathMyBookings, "DELETE", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.E.Enforce(string(tt.role), tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}

	// a second start does not duplicate the seeded rules
	again, err := NewCasbinService(db)
	require.NoError(t, err)
	policies, err := again.E.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, len(DefaultPolicies))
}
