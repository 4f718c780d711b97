package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// PropertyRepositoryImpl implements domain.PropertyRepository using GORM
type PropertyRepositoryImpl struct {
	db *gorm.DB
}

// DBProperty represents a listing row
type DBProperty struct {
	ID               uint   `gorm:"primaryKey"`
	OwnerID          uint   `gorm:"index"`
	OwnerName        string `gorm:"size:255"`
	Name             string `gorm:"size:255"`
	Description      string
	Address          string
	City             string  `gorm:"index;size:128"`
	Pincode          string  `gorm:"size:6"`
	PropertyType     string  `gorm:"index;size:16"`
	RoomType         string  `gorm:"index;size:16"`
	GenderPreference string  `gorm:"index;size:16"`
	MonthlyRent      float64 `gorm:"index"`
	SecurityDeposit  float64
	TotalRooms       int
	AvailableRooms   int
	Amenities        []string `gorm:"serializer:json"`
	Verified         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (DBProperty) TableName() string {
	return "properties"
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) *PropertyRepositoryImpl {
	return &PropertyRepositoryImpl{db: db}
}

// Create implements domain.PropertyRepository
func (r *PropertyRepositoryImpl) Create(ctx context.Context, ownerID uint, d domain.PropertyDraft) (*domain.Property, error) {
	var owner DBAccount
	if err := r.db.WithContext(ctx).Select("full_name").Where("id = ?", ownerID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	row := &DBProperty{
		OwnerID:          ownerID,
		OwnerName:        owner.FullName,
		Name:             strings.TrimSpace(d.Name),
		Description:      strings.TrimSpace(d.Description),
		Address:          strings.TrimSpace(d.Address),
		City:             strings.TrimSpace(d.City),
		Pincode:          d.Pincode,
		PropertyType:     d.PropertyType,
		RoomType:         d.RoomType,
		GenderPreference: d.GenderPreference,
		MonthlyRent:      d.MonthlyRent,
		SecurityDeposit:  d.SecurityDeposit,
		TotalRooms:       d.TotalRooms,
		AvailableRooms:   d.AvailableRooms,
		Amenities:        d.Amenities,
	}
	if row.GenderPreference == "" {
		row.GenderPreference = domain.GenderPreferenceAny
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return propertyToDomain(row), nil
}

// FindByID implements domain.PropertyRepository
func (r *PropertyRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Property, error) {
	var row DBProperty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return propertyToDomain(&row), nil
}

// Search implements domain.PropertyRepository. City matches case-insensitively;
// a gender filter also matches listings open to anyone.
func (r *PropertyRepositoryImpl) Search(ctx context.Context, f domain.PropertySearch) ([]domain.Property, error) {
	q := r.db.WithContext(ctx).Model(&DBProperty{})
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.RoomType != "" {
		q = q.Where("room_type = ?", f.RoomType)
	}
	if f.GenderPreference != "" && f.GenderPreference != domain.GenderPreferenceAny {
		q = q.Where("gender_preference IN ?", []string{f.GenderPreference, domain.GenderPreferenceAny})
	}
	if f.MinPrice > 0 {
		q = q.Where("monthly_rent >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("monthly_rent <= ?", f.MaxPrice)
	}

	var rows []DBProperty
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return propertiesToDomain(rows), nil
}

// ListByOwner implements domain.PropertyRepository
func (r *PropertyRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Property, error) {
	var rows []DBProperty
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return propertiesToDomain(rows), nil
}

// AdjustAvailability implements domain.PropertyRepository. The update is a
// single guarded statement so concurrent bookings cannot oversell rooms.
func (r *PropertyRepositoryImpl) AdjustAvailability(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).Model(&DBProperty{}).
		Where("id = ? AND available_rooms + ? >= 0 AND available_rooms + ? <= total_rooms", id, delta, delta).
		Update("available_rooms", gorm.Expr("available_rooms + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrNoRoomsAvailable
}

func propertyToDomain(row *DBProperty) *domain.Property {
	return &domain.Property{
		ID:               row.ID,
		Name:             row.Name,
		Description:      row.Description,
		Address:          row.Address,
		City:             row.City,
		Pincode:          row.Pincode,
		PropertyType:     row.PropertyType,
		RoomType:         row.RoomType,
		GenderPreference: row.GenderPreference,
		MonthlyRent:      row.MonthlyRent,
		SecurityDeposit:  row.SecurityDeposit,
		TotalRooms:       row.TotalRooms,
		AvailableRooms:   row.AvailableRooms,
		Amenities:        row.Amenities,
		OwnerID:          row.OwnerID,
		OwnerName:        row.OwnerName,
		Verified:         row.Verified,
	}
}

func propertiesToDomain(rows []DBProperty) []domain.Property {
	out := make([]domain.Property, 0, len(rows))
	for i := range rows {
		out = append(out, *propertyToDomain(&rows[i]))
	}
	return out
}

var _ domain.PropertyRepository = (*PropertyRepositoryImpl)(nil)
