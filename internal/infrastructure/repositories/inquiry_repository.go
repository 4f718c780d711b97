package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// InquiryRepositoryImpl implements domain.InquiryRepository using GORM
type InquiryRepositoryImpl struct {
	db *gorm.DB
}

// DBInquiry represents an inquiry row
type DBInquiry struct {
	ID         uint   `gorm:"primaryKey"`
	PropertyID uint   `gorm:"index"`
	SenderID   uint   `gorm:"index"`
	SenderName string `gorm:"size:255"`
	Message    string
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBInquiry) TableName() string {
	return "inquiries"
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) *InquiryRepositoryImpl {
	return &InquiryRepositoryImpl{db: db}
}

// Create implements domain.InquiryRepository
func (r *InquiryRepositoryImpl) Create(ctx context.Context, in *domain.Inquiry) error {
	row := &DBInquiry{
		PropertyID: in.PropertyID,
		SenderID:   in.SenderID,
		SenderName: in.SenderName,
		Message:    in.Message,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	in.ID = row.ID
	in.CreatedAt = row.CreatedAt
	return nil
}

// ListByOwner implements domain.InquiryRepository, newest first
func (r *InquiryRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Inquiry, error) {
	var rows []DBInquiry
	err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = inquiries.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("inquiries.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Inquiry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Inquiry{
			ID:         row.ID,
			PropertyID: row.PropertyID,
			SenderID:   row.SenderID,
			SenderName: row.SenderName,
			Message:    row.Message,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

// Models lists every table the repositories need migrated
func Models() []any {
	return []any{&DBAccount{}, &DBProperty{}, &DBBooking{}, &DBInquiry{}}
}

var _ domain.InquiryRepository = (*InquiryRepositoryImpl)(nil)
