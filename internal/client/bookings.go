package client

import (
	"context"
	"fmt"
	"math"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// BookingTotal previews the amount a booking will cost
func BookingTotal(monthlyRent float64, months int) float64 {
	if monthlyRent <= 0 || months <= 0 {
		return 0
	}
	return math.Round(monthlyRent*float64(months)*100) / 100
}

// RequestBooking validates the form against today's date and submits it
func (a *API) RequestBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	if err := req.Validate(a.clock()); err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := a.http.Post(ctx, domain.PathBookRequest, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// MyBookings lists the signed-in seeker's bookings
func (a *API) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	out := []domain.Booking{}
	if err := a.http.Get(ctx, domain.PathMyBookings, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OwnerBookings lists bookings against the signed-in owner's properties
func (a *API) OwnerBookings(ctx context.Context) ([]domain.Booking, error) {
	out := []domain.Booking{}
	if err := a.http.Get(ctx, domain.PathOwnerBooking, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecideBooking approves or rejects a pending booking
func (a *API) DecideBooking(ctx context.Context, id uint, status domain.BookingStatus) (*domain.Booking, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: booking id is required", domain.ErrInvalidInput)
	}
	if status != domain.BookingApproved && status != domain.BookingRejected {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, status)
	}
	var b domain.Booking
	path := fmt.Sprintf("%s/%d/status", domain.PathBookings, id)
	if err := a.http.Put(ctx, path, domain.BookingDecision{Status: status}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
