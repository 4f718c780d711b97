package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// SendInquiry asks an owner about a property
func (a *API) SendInquiry(ctx context.Context, req domain.InquiryRequest) (*domain.Inquiry, error) {
	if req.PropertyID == 0 {
		return nil, fmt.Errorf("%w: property is required", domain.ErrInvalidInput)
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	var out domain.Inquiry
	if err := a.http.Post(ctx, domain.PathInquiries, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OwnerInquiries lists inquiries about the signed-in owner's properties
func (a *API) OwnerInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	out := []domain.Inquiry{}
	if err := a.http.Get(ctx, domain.PathOwnerInquiry, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
