package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/mocks"
)

func newListingFixture(t *testing.T) (*ListingServiceImpl, *mocks.MockPropertyRepository, *mocks.MockInquiryRepository, *domain.Account) {
	t.Helper()
	props := &mocks.MockPropertyRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Property, error) {
			if id == 7 {
				return &domain.Property{ID: 7, Name: "Sunrise PG", OwnerID: 50}, nil
			}
			return nil, domain.ErrPropertyNotFound
		},
	}
	inquiries := &mocks.MockInquiryRepository{}
	accounts := mocks.NewMockAccountRepository()
	sender := &domain.Account{FullName: "Asha", Email: "asha@example.com"}
	require.NoError(t, accounts.Create(context.Background(), sender))
	return NewListingService(props, inquiries, accounts), props, inquiries, sender
}

func TestListingServiceImpl_CreateProperty(t *testing.T) {
	svc, props, _, _ := newListingFixture(t)
	var created int
	props.CreateFunc = func(ctx context.Context, ownerID uint, draft domain.PropertyDraft) (*domain.Property, error) {
		created++
		return &domain.Property{ID: 11, OwnerID: ownerID, Name: draft.Name, City: draft.City}, nil
	}
	draft := domain.PropertyDraft{
		Name: "Green Nest", Address: "4 FC Road", City: "Pune", Pincode: "411004",
		PropertyType: domain.PropertyTypeHostel, RoomType: domain.RoomTypeSingle,
		MonthlyRent: 9000, TotalRooms: 5, AvailableRooms: 5,
	}

	p, err := svc.CreateProperty(context.Background(), 50, draft)
	require.NoError(t, err)
	assert.Equal(t, uint(50), p.OwnerID)

	draft.AvailableRooms = 6
	_, err = svc.CreateProperty(context.Background(), 50, draft)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, created, "invalid drafts are not stored")
}

func TestListingServiceImpl_Search(t *testing.T) {
	svc, props, _, _ := newListingFixture(t)
	props.SearchFunc = func(ctx context.Context, filter domain.PropertySearch) ([]domain.Property, error) {
		return []domain.Property{{ID: 7, City: filter.City}}, nil
	}

	got, err := svc.Search(context.Background(), domain.PropertySearch{City: "Pune"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.Search(context.Background(), domain.PropertySearch{MinPrice: 10, MaxPrice: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListingServiceImpl_SendInquiry(t *testing.T) {
	tests := []struct {
		name          string
		req           domain.InquiryRequest
		expectedError error
	}{
		{name: "stored with sender name", req: domain.InquiryRequest{PropertyID: 7, Message: "  Is food included? "}},
		{name: "blank message", req: domain.InquiryRequest{PropertyID: 7, Message: "   "}, expectedError: domain.ErrInvalidInput},
		{name: "too long", req: domain.InquiryRequest{PropertyID: 7, Message: strings.Repeat("a", MaxInquiryLength+1)}, expectedError: domain.ErrInvalidInput},
		{name: "no property", req: domain.InquiryRequest{Message: "hi"}, expectedError: domain.ErrInvalidInput},
		{name: "unknown property", req: domain.InquiryRequest{PropertyID: 8, Message: "hi"}, expectedError: domain.ErrPropertyNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, inquiries, sender := newListingFixture(t)

			in, err := svc.SendInquiry(context.Background(), sender.ID, tt.req)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, inquiries.Created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Is food included?", in.Message)
			assert.Equal(t, "Asha", in.SenderName)
			require.Len(t, inquiries.Created, 1)
		})
	}
}
