package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/transport"
)

var today = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tc, err := transport.New(srv.URL, transport.WithRetry(transport.NoRetry()))
	require.NoError(t, err)
	tc.SetToken("T1")
	return New(tc, WithClock(func() time.Time { return today }))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func unexpected(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	}
}

func TestSearchProperties(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, domain.PathSearch, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Pune", q.Get("city"))
		assert.Equal(t, "FEMALE", q.Get("genderPreference"))
		assert.Equal(t, "8000", q.Get("maxPrice"))
		assert.False(t, q.Has("minPrice"))
		assert.False(t, q.Has("roomType"))
		writeJSON(w, http.StatusOK, []domain.Property{{ID: 1, Name: "Sunrise PG", City: "Pune"}})
	})

	got, err := api.SearchProperties(context.Background(), domain.PropertySearch{City: "Pune", GenderPreference: "FEMALE", MaxPrice: 8000})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sunrise PG", got[0].Name)
}

func TestSearchProperties_InvalidRange(t *testing.T) {
	api := newTestAPI(t, unexpected(t))

	_, err := api.SearchProperties(context.Background(), domain.PropertySearch{MinPrice: 9000, MaxPrice: 5000})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProperty(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/properties/404" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Property not found"})
			return
		}
		assert.Equal(t, "/api/properties/12", r.URL.Path)
		writeJSON(w, http.StatusOK, domain.Property{ID: 12, Name: "Green Nest"})
	})

	p, err := api.Property(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Green Nest", p.Name)

	_, err = api.Property(context.Background(), 404)
	assert.Equal(t, http.StatusNotFound, domain.StatusOf(err))
	assert.Equal(t, "Property not found", domain.MessageOf(err, ""))

	_, err = api.Property(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func validDraft() domain.PropertyDraft {
	return domain.PropertyDraft{
		Name: "Sunrise PG", Address: "12 MG Road", City: "Pune", Pincode: "411001",
		PropertyType: domain.PropertyTypePG, RoomType: domain.RoomTypeDouble, GenderPreference: domain.GenderPreferenceAny,
		MonthlyRent: 6500, SecurityDeposit: 10000, TotalRooms: 10, AvailableRooms: 4,
	}
}

func TestCreateProperty(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, domain.PathProperties, r.URL.Path)
		var d domain.PropertyDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		writeJSON(w, http.StatusCreated, domain.Property{ID: 5, Name: d.Name, TotalRooms: d.TotalRooms})
	})

	p, err := api.CreateProperty(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, uint(5), p.ID)

	bad := validDraft()
	bad.Pincode = "0110"
	_, err = api.CreateProperty(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestBooking(t *testing.T) {
	var calls int32
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var req domain.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, domain.Booking{ID: 3, PropertyID: req.PropertyID, NumberOfMonths: req.NumberOfMonths, Status: domain.BookingPending})
	})

	tests := []struct {
		name    string
		req     domain.BookingRequest
		wantErr bool
	}{
		{name: "valid", req: domain.BookingRequest{PropertyID: 1, CheckInDate: "2026-03-15", NumberOfMonths: 6}},
		{name: "today is allowed", req: domain.BookingRequest{PropertyID: 1, CheckInDate: "2026-03-01", NumberOfMonths: 1}},
		{name: "past date", req: domain.BookingRequest{PropertyID: 1, CheckInDate: "2026-02-28", NumberOfMonths: 1}, wantErr: true},
		{name: "bad date", req: domain.BookingRequest{PropertyID: 1, CheckInDate: "15/03/2026", NumberOfMonths: 1}, wantErr: true},
		{name: "zero months", req: domain.BookingRequest{PropertyID: 1, CheckInDate: "2026-03-15"}, wantErr: true},
		{name: "no property", req: domain.BookingRequest{CheckInDate: "2026-03-15", NumberOfMonths: 2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := api.RequestBooking(context.Background(), tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingPending, b.Status)
		})
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "invalid forms never reach the server")
}

func TestBookingTotal(t *testing.T) {
	assert.Equal(t, 39000.0, BookingTotal(6500, 6))
	assert.Zero(t, BookingTotal(6500, 0))
	assert.Zero(t, BookingTotal(-1, 3))
}

func TestDecideBooking(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/bookings/8/status", r.URL.Path)
		var d domain.BookingDecision
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		writeJSON(w, http.StatusOK, domain.Booking{ID: 8, Status: d.Status})
	})

	b, err := api.DecideBooking(context.Background(), 8, domain.BookingApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)

	_, err = api.DecideBooking(context.Background(), 8, domain.BookingPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = api.DecideBooking(context.Background(), 0, domain.BookingRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListsDecodeEmptyAsEmpty(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	ctx := context.Background()

	mine, err := api.MyBookings(ctx)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)

	inq, err := api.OwnerInquiries(ctx)
	require.NoError(t, err)
	assert.Empty(t, inq)
}

func TestSendInquiry(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var req domain.InquiryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Is food included?", req.Message)
		writeJSON(w, http.StatusCreated, domain.Inquiry{ID: 1, PropertyID: req.PropertyID, Message: req.Message})
	})

	inq, err := api.SendInquiry(context.Background(), domain.InquiryRequest{PropertyID: 4, Message: "  Is food included?  "})
	require.NoError(t, err)
	assert.Equal(t, uint(4), inq.PropertyID)

	_, err = api.SendInquiry(context.Background(), domain.InquiryRequest{PropertyID: 4, Message: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
