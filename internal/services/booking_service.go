package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// BookingServiceImpl implements domain.BookingService and domain.BookingLists
type BookingServiceImpl struct {
	properties domain.PropertyRepository
	bookings   domain.BookingRepository
	accounts   domain.AccountRepository
	clock      domain.Clock
}

// NewBookingService creates a new booking service. A nil clock uses time.Now.
func NewBookingService(
	properties domain.PropertyRepository,
	bookings domain.BookingRepository,
	accounts domain.AccountRepository,
	clock domain.Clock,
) *BookingServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	return &BookingServiceImpl{
		properties: properties,
		bookings:   bookings,
		accounts:   accounts,
		clock:      clock,
	}
}

// Request implements domain.BookingService. A tenant holds at most one open
// booking per property and rooms must be available at request time.
func (s *BookingServiceImpl) Request(ctx context.Context, tenantID uint, req domain.BookingRequest) (*domain.Booking, error) {
	if err := req.Validate(s.clock()); err != nil {
		return nil, err
	}

	tenant, err := s.accounts.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.AvailableRooms <= 0 {
		return nil, domain.ErrNoRoomsAvailable
	}

	open, err := s.bookings.HasOpenBooking(ctx, tenantID, property.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open bookings: %w", err)
	}
	if open {
		return nil, domain.ErrDuplicateBooking
	}

	booking := &domain.Booking{
		Reference:      uuid.NewString(),
		PropertyID:     property.ID,
		PropertyName:   property.Name,
		TenantID:       tenant.ID,
		TenantName:     tenant.FullName,
		CheckInDate:    req.CheckInDate,
		NumberOfMonths: req.NumberOfMonths,
		MonthlyRent:    property.MonthlyRent,
		TotalAmount:    math.Round(property.MonthlyRent*float64(req.NumberOfMonths)*100) / 100,
		Status:         domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Printf("BOOKING_REQUESTED: booking_id=%d property_id=%d tenant_id=%d ref=%s", booking.ID, property.ID, tenant.ID, booking.Reference)
	return booking, nil
}

// Decide implements domain.BookingService. Only the property's owner may
// decide, only pending bookings move, and approval takes a room.
func (s *BookingServiceImpl) Decide(ctx context.Context, ownerID, bookingID uint, status domain.BookingStatus) (*domain.Booking, error) {
	if status != domain.BookingApproved && status != domain.BookingRejected {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, status)
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	property, err := s.properties.FindByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, domain.ErrNotPropertyOwner
	}
	if booking.Status != domain.BookingPending {
		return nil, domain.ErrBookingNotPending
	}

	if status == domain.BookingApproved {
		if err := s.properties.AdjustAvailability(ctx, property.ID, -1); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, status); err != nil {
		if status == domain.BookingApproved {
			if rerr := s.properties.AdjustAvailability(ctx, property.ID, 1); rerr != nil {
				log.Printf("BOOKING_ROOM_RELEASE_FAILED: booking_id=%d property_id=%d error=%v", booking.ID, property.ID, rerr)
			}
		}
		if errors.Is(err, domain.ErrBookingNotPending) {
			log.Printf("BOOKING_DECISION_LOST: booking_id=%d owner_id=%d status=%s", booking.ID, ownerID, status)
			return nil, err
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	booking.Status = status
	log.Printf("BOOKING_DECIDED: booking_id=%d owner_id=%d status=%s", booking.ID, ownerID, status)
	return booking, nil
}

// Dashboard implements domain.BookingService
func (s *BookingServiceImpl) Dashboard(ctx context.Context, ownerID uint) (*domain.DashboardSummary, error) {
	properties, err := s.properties.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{
		TotalProperties: len(properties),
		TotalBookings:   len(bookings),
	}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingPending:
			summary.PendingBookings++
		case domain.BookingApproved:
			summary.TotalRevenue += b.TotalAmount
		}
	}
	return summary, nil
}

// TenantBookings implements domain.BookingLists
func (s *BookingServiceImpl) TenantBookings(ctx context.Context, tenantID uint) ([]domain.Booking, error) {
	return s.bookings.ListByTenant(ctx, tenantID)
}

// OwnerBookings implements domain.BookingLists
func (s *BookingServiceImpl) OwnerBookings(ctx context.Context, ownerID uint) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

var (
	_ domain.BookingService = (*BookingServiceImpl)(nil)
	_ domain.BookingLists   = (*BookingServiceImpl)(nil)
)
