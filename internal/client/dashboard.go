package client

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

var rupees = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders a whole-rupee amount with digit grouping
func FormatRupees(amount float64) string {
	return rupees.Sprintf("₹%d", int64(math.Round(amount)))
}

// Dashboard fetches the owner summary, properties and bookings in parallel
// and derives occupancy, pending count and revenue from them. Either all
// three succeed or the first error is returned; nothing is partially merged.
func (a *API) Dashboard(ctx context.Context) (*domain.OwnerDashboard, error) {
	var (
		summary    domain.DashboardSummary
		properties []domain.Property
		bookings   []domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.http.Get(gctx, domain.PathDashboard, nil, &summary)
	})
	g.Go(func() error {
		var err error
		properties, err = a.MyProperties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = a.OwnerBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return buildDashboard(summary, properties, bookings), nil
}

func buildDashboard(summary domain.DashboardSummary, properties []domain.Property, bookings []domain.Booking) *domain.OwnerDashboard {
	d := &domain.OwnerDashboard{
		Summary:    summary,
		Properties: properties,
		Bookings:   bookings,
	}
	for _, p := range properties {
		d.TotalRooms += p.TotalRooms
		d.OccupiedRooms += p.OccupiedRooms()
	}
	if d.TotalRooms > 0 {
		d.OccupancyPercent = math.Round(float64(d.OccupiedRooms)*1000/float64(d.TotalRooms)) / 10
	}

	approved := 0.0
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingPending:
			d.PendingBookings++
		case domain.BookingApproved:
			approved += b.TotalAmount
		}
	}
	if len(bookings) == 0 {
		d.PendingBookings = summary.PendingBookings
	}

	revenue := summary.TotalRevenue
	if revenue == 0 {
		revenue = approved
	}
	d.Revenue = FormatRupees(revenue)
	return d
}
