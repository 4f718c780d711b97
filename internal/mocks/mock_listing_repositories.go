package mocks

import (
	"context"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockPropertyRepository implements domain.PropertyRepository. Unset funcs
// report not found or an empty result.
type MockPropertyRepository struct {
	CreateFunc             func(ctx context.Context, ownerID uint, draft domain.PropertyDraft) (*domain.Property, error)
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Property, error)
	SearchFunc             func(ctx context.Context, filter domain.PropertySearch) ([]domain.Property, error)
	ListByOwnerFunc        func(ctx context.Context, ownerID uint) ([]domain.Property, error)
	AdjustAvailabilityFunc func(ctx context.Context, id uint, delta int) error
}

func (m *MockPropertyRepository) Create(ctx context.Context, ownerID uint, draft domain.PropertyDraft) (*domain.Property, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, draft)
	}
	return &domain.Property{ID: 1, OwnerID: ownerID, Name: draft.Name, City: draft.City, TotalRooms: draft.TotalRooms, AvailableRooms: draft.AvailableRooms, MonthlyRent: draft.MonthlyRent}, nil
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uint) (*domain.Property, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrPropertyNotFound
}

func (m *MockPropertyRepository) Search(ctx context.Context, filter domain.PropertySearch) ([]domain.Property, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return []domain.Property{}, nil
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Property, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []domain.Property{}, nil
}

func (m *MockPropertyRepository) AdjustAvailability(ctx context.Context, id uint, delta int) error {
	if m.AdjustAvailabilityFunc != nil {
		return m.AdjustAvailabilityFunc(ctx, id, delta)
	}
	return nil
}

// MockBookingRepository implements domain.BookingRepository
type MockBookingRepository struct {
	CreateFunc         func(ctx context.Context, booking *domain.Booking) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Booking, error)
	ListByTenantFunc   func(ctx context.Context, tenantID uint) ([]domain.Booking, error)
	ListByOwnerFunc    func(ctx context.Context, ownerID uint) ([]domain.Booking, error)
	UpdateStatusFunc   func(ctx context.Context, id uint, status domain.BookingStatus) error
	HasOpenBookingFunc func(ctx context.Context, tenantID, propertyID uint) (bool, error)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	booking.ID = 1
	return nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingRepository) ListByTenant(ctx context.Context, tenantID uint) ([]domain.Booking, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantID)
	}
	return []domain.Booking{}, nil
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Booking, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []domain.Booking{}, nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockBookingRepository) HasOpenBooking(ctx context.Context, tenantID, propertyID uint) (bool, error) {
	if m.HasOpenBookingFunc != nil {
		return m.HasOpenBookingFunc(ctx, tenantID, propertyID)
	}
	return false, nil
}

// MockInquiryRepository implements domain.InquiryRepository and keeps what
// was created
type MockInquiryRepository struct {
	CreateFunc      func(ctx context.Context, inquiry *domain.Inquiry) error
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]domain.Inquiry, error)

	Created []domain.Inquiry
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inquiry)
	}
	inquiry.ID = uint(len(m.Created) + 1)
	m.Created = append(m.Created, *inquiry)
	return nil
}

func (m *MockInquiryRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Inquiry, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []domain.Inquiry{}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.PropertyRepository = (*MockPropertyRepository)(nil)
	_ domain.BookingRepository  = (*MockBookingRepository)(nil)
	_ domain.InquiryRepository  = (*MockInquiryRepository)(nil)
)
