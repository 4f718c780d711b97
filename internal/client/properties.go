package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// SearchProperties runs the public search. Empty filters are not sent.
func (a *API) SearchProperties(ctx context.Context, f domain.PropertySearch) ([]domain.Property, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("city", f.City)
	q.Set("propertyType", f.PropertyType)
	q.Set("roomType", f.RoomType)
	q.Set("genderPreference", f.GenderPreference)
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}

	out := []domain.Property{}
	if err := a.http.Get(ctx, domain.PathSearch, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Property fetches one listing
func (a *API) Property(ctx context.Context, id uint) (*domain.Property, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: property id is required", domain.ErrInvalidInput)
	}
	var p domain.Property
	if err := a.http.Get(ctx, fmt.Sprintf("%s/%d", domain.PathProperties, id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty validates and submits an owner's listing
func (a *API) CreateProperty(ctx context.Context, d domain.PropertyDraft) (*domain.Property, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var p domain.Property
	if err := a.http.Post(ctx, domain.PathProperties, d, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MyProperties lists the signed-in owner's listings
func (a *API) MyProperties(ctx context.Context) ([]domain.Property, error) {
	out := []domain.Property{}
	if err := a.http.Get(ctx, domain.PathMyProperties, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
