package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

func TestDashboard(t *testing.T) {
	var inflight, peak int32
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inflight, 1)
		defer atomic.AddInt32(&inflight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)

		switch r.URL.Path {
		case domain.PathDashboard:
			writeJSON(w, http.StatusOK, domain.DashboardSummary{TotalProperties: 2, TotalBookings: 3, PendingBookings: 9})
		case domain.PathMyProperties:
			writeJSON(w, http.StatusOK, []domain.Property{
				{ID: 1, TotalRooms: 10, AvailableRooms: 4},
				{ID: 2, TotalRooms: 6, AvailableRooms: 6},
			})
		case domain.PathOwnerBooking:
			writeJSON(w, http.StatusOK, []domain.Booking{
				{ID: 1, Status: domain.BookingPending, TotalAmount: 6500},
				{ID: 2, Status: domain.BookingApproved, TotalAmount: 12000},
				{ID: 3, Status: domain.BookingRejected, TotalAmount: 3000},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	d, err := api.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 16, d.TotalRooms)
	assert.Equal(t, 6, d.OccupiedRooms)
	assert.Equal(t, 37.5, d.OccupancyPercent)
	assert.Equal(t, 1, d.PendingBookings, "derived from the booking list")
	assert.Equal(t, "₹12,000", d.Revenue, "approved bookings when the summary has no revenue")
	assert.Len(t, d.Properties, 2)
	assert.Equal(t, 2, d.Summary.TotalProperties)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1), "the three fetches run in parallel")
}

func TestDashboard_FailsWhole(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == domain.PathOwnerBooking {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
			return
		}
		writeJSON(w, http.StatusOK, []domain.Property{})
	})

	d, err := api.Dashboard(context.Background())
	assert.Nil(t, d)
	assert.Equal(t, http.StatusForbidden, domain.StatusOf(err))
}

func TestDashboard_CancelledContext(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d, err := api.Dashboard(ctx)
	assert.Nil(t, d)
	assert.Error(t, err)
}

func TestBuildDashboard(t *testing.T) {
	tests := []struct {
		name       string
		summary    domain.DashboardSummary
		properties []domain.Property
		bookings   []domain.Booking
		occupancy  float64
		pending    int
		revenue    string
	}{
		{
			name:    "empty owner",
			revenue: "₹0",
		},
		{
			name:     "summary revenue wins",
			summary:  domain.DashboardSummary{TotalRevenue: 45500},
			bookings: []domain.Booking{{Status: domain.BookingApproved, TotalAmount: 500}},
			revenue:  "₹45,500",
		},
		{
			name:    "pending falls back to summary without a list",
			summary: domain.DashboardSummary{PendingBookings: 4},
			pending: 4,
			revenue: "₹0",
		},
		{
			name:       "fully occupied",
			properties: []domain.Property{{TotalRooms: 3, AvailableRooms: 0}},
			occupancy:  100,
			revenue:    "₹0",
		},
		{
			name:       "one decimal place",
			properties: []domain.Property{{TotalRooms: 3, AvailableRooms: 2}},
			occupancy:  33.3,
			revenue:    "₹0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildDashboard(tt.summary, tt.properties, tt.bookings)
			assert.Equal(t, tt.occupancy, d.OccupancyPercent)
			assert.Equal(t, tt.pending, d.PendingBookings)
			assert.Equal(t, tt.revenue, d.Revenue)
		})
	}
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹500", FormatRupees(500))
	assert.Equal(t, "₹12,000", FormatRupees(11999.6))
}
