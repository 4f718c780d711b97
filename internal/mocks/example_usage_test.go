package mocks_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/mocks"
)

func TestMockCasbinEnforcer(t *testing.T) {
	e := mocks.NewMockCasbinEnforcer()

	tests := []struct {
		name     string
		role     domain.Role
		path     string
		method   string
		expected bool
	}{
		{"owner dashboard via wildcard", domain.RolePGOwner, domain.PathDashboard, "GET", true},
		{"owner cannot book", domain.RolePGOwner, domain.PathBookRequest, "POST", false},
		{"finder books", domain.RoleRoomFinder, domain.PathBookRequest, "POST", true},
		{"finder cannot see dashboard", domain.RoleRoomFinder, domain.PathDashboard, "GET", false},
		{"method must match", domain.RoleRoomFinder, domain.PathMyBookings, "POST", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := e.Enforce(string(tt.role), tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}

	added, _ := e.AddPolicy("ROOM_FINDER", domain.PathInquiries, "POST")
	assert.True(t, added)
	added, _ = e.AddPolicy("ROOM_FINDER", domain.PathInquiries, "POST")
	assert.False(t, added, "duplicates are not added twice")

	removed, _ := e.RemovePolicy("ROOM_FINDER", domain.PathInquiries, "POST")
	assert.True(t, removed)
	ok, _ := e.Enforce("ROOM_FINDER", domain.PathInquiries, "POST")
	assert.False(t, ok)
}

func TestMockAccountRepository(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	ctx := context.Background()

	a := &domain.Account{Email: "asha@example.com", Role: domain.RoleRoomFinder}
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, uint(1), a.ID)
	assert.ErrorIs(t, repo.Create(ctx, &domain.Account{Email: "asha@example.com"}), domain.ErrUserAlreadyExists)

	require.NoError(t, repo.MarkEmailVerified(ctx, a.ID))
	got, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMockRealtimeConn(t *testing.T) {
	d := &mocks.MockRealtimeDialer{}
	conn, err := d.Dial(context.Background(), "ws://x/ws", "T1")
	require.NoError(t, err)

	join, _ := domain.NewFrame(domain.EventJoin, 1)
	require.NoError(t, conn.Send(join))
	assert.Len(t, d.Last().Sent(), 1)
	assert.Equal(t, "T1", d.Calls()[0].Token)

	d.Last().Push(join)
	f, err := conn.Receive()
	require.NoError(t, err)
	assert.Equal(t, domain.EventJoin, f.Event)

	require.NoError(t, conn.Close())
	_, err = conn.Receive()
	assert.True(t, errors.Is(err, io.EOF))
	assert.Error(t, conn.Send(join))
}
