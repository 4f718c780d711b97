package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// BookingRepositoryImpl implements domain.BookingRepository using GORM
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// DBBooking represents a booking row
type DBBooking struct {
	ID             uint   `gorm:"primaryKey"`
	Reference      string `gorm:"uniqueIndex;size:36"`
	PropertyID     uint   `gorm:"index"`
	PropertyName   string `gorm:"size:255"`
	TenantID       uint   `gorm:"index"`
	TenantName     string `gorm:"size:255"`
	CheckInDate    string `gorm:"size:10"`
	NumberOfMonths int
	MonthlyRent    float64
	TotalAmount    float64
	Status         string `gorm:"index;size:16"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBBooking) TableName() string {
	return "bookings"
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

// Create implements domain.BookingRepository
func (r *BookingRepositoryImpl) Create(ctx context.Context, b *domain.Booking) error {
	row := &DBBooking{
		Reference:      b.Reference,
		PropertyID:     b.PropertyID,
		PropertyName:   b.PropertyName,
		TenantID:       b.TenantID,
		TenantName:     b.TenantName,
		CheckInDate:    b.CheckInDate,
		NumberOfMonths: b.NumberOfMonths,
		MonthlyRent:    b.MonthlyRent,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	b.ID = row.ID
	b.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.BookingRepository
func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var row DBBooking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return bookingToDomain(&row), nil
}

// ListByTenant implements domain.BookingRepository, newest first
func (r *BookingRepositoryImpl) ListByTenant(ctx context.Context, tenantID uint) ([]domain.Booking, error) {
	var rows []DBBooking
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return bookingsToDomain(rows), nil
}

// ListByOwner implements domain.BookingRepository: bookings against any of
// the owner's properties, newest first
func (r *BookingRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Booking, error) {
	var rows []DBBooking
	err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("bookings.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return bookingsToDomain(rows), nil
}

// UpdateStatus implements domain.BookingRepository. Only a pending booking
// moves; the guard is part of the statement so concurrent decisions cannot
// both apply.
func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&DBBooking{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrBookingNotPending
}

// HasOpenBooking implements domain.BookingRepository. Pending and approved
// bookings are open.
func (r *BookingRepositoryImpl) HasOpenBooking(ctx context.Context, tenantID, propertyID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBBooking{}).
		Where("tenant_id = ? AND property_id = ? AND status IN ?", tenantID, propertyID,
			[]string{string(domain.BookingPending), string(domain.BookingApproved)}).
		Count(&n).Error
	return n > 0, err
}

func bookingToDomain(row *DBBooking) *domain.Booking {
	return &domain.Booking{
		ID:             row.ID,
		Reference:      row.Reference,
		PropertyID:     row.PropertyID,
		PropertyName:   row.PropertyName,
		TenantID:       row.TenantID,
		TenantName:     row.TenantName,
		CheckInDate:    row.CheckInDate,
		NumberOfMonths: row.NumberOfMonths,
		MonthlyRent:    row.MonthlyRent,
		TotalAmount:    row.TotalAmount,
		Status:         domain.BookingStatus(row.Status),
		CreatedAt:      row.CreatedAt,
	}
}

func bookingsToDomain(rows []DBBooking) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, *bookingToDomain(&rows[i]))
	}
	return out
}

var _ domain.BookingRepository = (*BookingRepositoryImpl)(nil)
