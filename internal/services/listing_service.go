package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MaxInquiryLength bounds an inquiry message
const MaxInquiryLength = 1000

// ListingServiceImpl implements domain.ListingService
type ListingServiceImpl struct {
	properties domain.PropertyRepository
	inquiries  domain.InquiryRepository
	accounts   domain.AccountRepository
}

// NewListingService creates a new listing service
func NewListingService(properties domain.PropertyRepository, inquiries domain.InquiryRepository, accounts domain.AccountRepository) *ListingServiceImpl {
	return &ListingServiceImpl{properties: properties, inquiries: inquiries, accounts: accounts}
}

// CreateProperty implements domain.ListingService
func (s *ListingServiceImpl) CreateProperty(ctx context.Context, ownerID uint, draft domain.PropertyDraft) (*domain.Property, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	p, err := s.properties.Create(ctx, ownerID, draft)
	if err != nil {
		return nil, err
	}
	log.Printf("PROPERTY_CREATED: property_id=%d owner_id=%d city=%s", p.ID, ownerID, p.City)
	return p, nil
}

// Property implements domain.ListingService
func (s *ListingServiceImpl) Property(ctx context.Context, id uint) (*domain.Property, error) {
	return s.properties.FindByID(ctx, id)
}

// Search implements domain.ListingService
func (s *ListingServiceImpl) Search(ctx context.Context, filter domain.PropertySearch) ([]domain.Property, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.properties.Search(ctx, filter)
}

// OwnerProperties implements domain.ListingService
func (s *ListingServiceImpl) OwnerProperties(ctx context.Context, ownerID uint) ([]domain.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

// SendInquiry implements domain.ListingService
func (s *ListingServiceImpl) SendInquiry(ctx context.Context, senderID uint, req domain.InquiryRequest) (*domain.Inquiry, error) {
	msg := strings.TrimSpace(req.Message)
	switch {
	case req.PropertyID == 0:
		return nil, fmt.Errorf("%w: property is required", domain.ErrInvalidInput)
	case msg == "":
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	case len(msg) > MaxInquiryLength:
		return nil, fmt.Errorf("%w: message must be at most %d characters", domain.ErrInvalidInput, MaxInquiryLength)
	}

	if _, err := s.properties.FindByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}
	sender, err := s.accounts.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	inquiry := &domain.Inquiry{
		PropertyID: req.PropertyID,
		SenderID:   sender.ID,
		SenderName: sender.FullName,
		Message:    msg,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to save inquiry: %w", err)
	}
	return inquiry, nil
}

// OwnerInquiries implements domain.ListingService
func (s *ListingServiceImpl) OwnerInquiries(ctx context.Context, ownerID uint) ([]domain.Inquiry, error) {
	return s.inquiries.ListByOwner(ctx, ownerID)
}

var _ domain.ListingService = (*ListingServiceImpl)(nil)
