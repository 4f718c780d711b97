package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/client"
)

func parseID(what, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, what)
	}
	return uint(id), nil
}

func (s *Shell) printProperties(props []domain.Property) error {
	if len(props) == 0 {
		s.printf("No properties found\n")
		return nil
	}
	tw := s.table()
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tTYPE\tROOM\tFOR\tRENT\tAVAILABLE")
	for _, p := range props {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d/%d\n",
			p.ID, p.Name, p.City, p.PropertyType, p.RoomType, p.GenderPreference,
			client.FormatRupees(p.MonthlyRent), p.AvailableRooms, p.TotalRooms)
	}
	return tw.Flush()
}

func searchCommand() *Command {
	var f domain.PropertySearch
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	fs.StringVar(&f.City, "city", "", "city")
	fs.StringVar(&f.PropertyType, "type", "", "PG, HOSTEL or FLAT")
	fs.StringVar(&f.RoomType, "room-type", "", "SINGLE, DOUBLE or TRIPLE")
	fs.StringVar(&f.GenderPreference, "gender", "", "MALE, FEMALE or ANY")
	fs.Float64Var(&f.MinPrice, "min-price", 0, "minimum monthly rent")
	fs.Float64Var(&f.MaxPrice, "max-price", 0, "maximum monthly rent")
	return &Command{
		Name:    "search",
		Summary: "search listed properties",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			f.PropertyType = strings.ToUpper(f.PropertyType)
			f.RoomType = strings.ToUpper(f.RoomType)
			f.GenderPreference = strings.ToUpper(f.GenderPreference)
			props, err := s.Container.API.SearchProperties(s.Ctx, f)
			if err != nil {
				return err
			}
			return s.printProperties(props)
		},
	}
}

func propertyCommand() *Command {
	return &Command{
		Name:    "property",
		Summary: "show one property",
		Usage:   "property <id>",
		Run: func(s *Shell, args []string) error {
			if err := exactArgs("property", args, 1, "<id>"); err != nil {
				return err
			}
			id, err := parseID("property id", args[0])
			if err != nil {
				return err
			}
			p, err := s.Container.API.Property(s.Ctx, id)
			if err != nil {
				return err
			}
			tw := s.table()
			fmt.Fprintf(tw, "Name\t%s\n", p.Name)
			if p.Description != "" {
				fmt.Fprintf(tw, "About\t%s\n", p.Description)
			}
			fmt.Fprintf(tw, "Address\t%s, %s %s\n", p.Address, p.City, p.Pincode)
			fmt.Fprintf(tw, "Type\t%s / %s / %s\n", p.PropertyType, p.RoomType, p.GenderPreference)
			fmt.Fprintf(tw, "Rent\t%s per month\n", client.FormatRupees(p.MonthlyRent))
			if p.SecurityDeposit > 0 {
				fmt.Fprintf(tw, "Deposit\t%s\n", client.FormatRupees(p.SecurityDeposit))
			}
			fmt.Fprintf(tw, "Rooms\t%d of %d available\n", p.AvailableRooms, p.TotalRooms)
			if len(p.Amenities) > 0 {
				fmt.Fprintf(tw, "Amenities\t%s\n", strings.Join(p.Amenities, ", "))
			}
			if p.OwnerName != "" {
				fmt.Fprintf(tw, "Owner\t%s (id %d)\n", p.OwnerName, p.OwnerID)
			}
			return tw.Flush()
		},
	}
}

func addPropertyCommand() *Command {
	var d domain.PropertyDraft
	fs := pflag.NewFlagSet("add-property", pflag.ContinueOnError)
	fs.StringVar(&d.Name, "name", "", "property name")
	fs.StringVar(&d.Description, "description", "", "short description")
	fs.StringVar(&d.Address, "address", "", "street address")
	fs.StringVar(&d.City, "city", "", "city")
	fs.StringVar(&d.Pincode, "pincode", "", "6-digit postal code")
	fs.StringVar(&d.PropertyType, "type", domain.PropertyTypePG, "PG, HOSTEL or FLAT")
	fs.StringVar(&d.RoomType, "room-type", domain.RoomTypeSingle, "SINGLE, DOUBLE or TRIPLE")
	fs.StringVar(&d.GenderPreference, "gender", domain.GenderPreferenceAny, "MALE, FEMALE or ANY")
	fs.Float64Var(&d.MonthlyRent, "rent", 0, "monthly rent")
	fs.Float64Var(&d.SecurityDeposit, "deposit", 0, "security deposit")
	fs.IntVar(&d.TotalRooms, "rooms", 0, "total rooms")
	fs.IntVar(&d.AvailableRooms, "available", 0, "rooms available now")
	fs.StringSliceVar(&d.Amenities, "amenities", nil, "comma-separated amenities")
	return &Command{
		Name:    "add-property",
		Summary: "list a new property (owners)",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			if _, err := s.RequireRole(domain.RolePGOwner); err != nil {
				return err
			}
			d.PropertyType = strings.ToUpper(d.PropertyType)
			d.RoomType = strings.ToUpper(d.RoomType)
			d.GenderPreference = strings.ToUpper(d.GenderPreference)
			p, err := s.Container.API.CreateProperty(s.Ctx, d)
			if err != nil {
				return err
			}
			s.printf("Listed %s with id %d\n", p.Name, p.ID)
			return nil
		},
	}
}

func myPropertiesCommand() *Command {
	return &Command{
		Name:    "my-properties",
		Summary: "list your properties (owners)",
		Run: func(s *Shell, args []string) error {
			if _, err := s.RequireRole(domain.RolePGOwner); err != nil {
				return err
			}
			props, err := s.Container.API.MyProperties(s.Ctx)
			if err != nil {
				return err
			}
			return s.printProperties(props)
		},
	}
}

func bookCommand() *Command {
	var req domain.BookingRequest
	var property uint
	fs := pflag.NewFlagSet("book", pflag.ContinueOnError)
	fs.UintVar(&property, "property", 0, "property id")
	fs.StringVar(&req.CheckInDate, "check-in", "", "check-in date, YYYY-MM-DD")
	fs.IntVar(&req.NumberOfMonths, "months", 1, "number of months")
	return &Command{
		Name:    "book",
		Summary: "request a room (room finders)",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			if _, err := s.RequireRole(domain.RoleRoomFinder); err != nil {
				return err
			}
			req.PropertyID = property
			if err := req.Validate(time.Now()); err != nil {
				return err
			}
			p, err := s.Container.API.Property(s.Ctx, property)
			if err != nil {
				return err
			}
			s.printf("%s: %d months at %s = %s\n", p.Name, req.NumberOfMonths,
				client.FormatRupees(p.MonthlyRent), client.FormatRupees(client.BookingTotal(p.MonthlyRent, req.NumberOfMonths)))

			b, err := s.Container.API.RequestBooking(s.Ctx, req)
			if err != nil {
				return err
			}
			s.printf("Booking %d is %s\n", b.ID, b.Status)
			return nil
		},
	}
}

func bookingsCommand() *Command {
	return &Command{
		Name:    "bookings",
		Summary: "list your bookings, or bookings on your properties for owners",
		Run: func(s *Shell, args []string) error {
			u, err := s.User()
			if err != nil {
				return err
			}
			var list []domain.Booking
			if u.Role == domain.RolePGOwner {
				list, err = s.Container.API.OwnerBookings(s.Ctx)
			} else {
				list, err = s.Container.API.MyBookings(s.Ctx)
			}
			if err != nil {
				return err
			}
			if len(list) == 0 {
				s.printf("No bookings\n")
				return nil
			}
			tw := s.table()
			fmt.Fprintln(tw, "ID\tPROPERTY\tTENANT\tCHECK-IN\tMONTHS\tTOTAL\tSTATUS")
			for _, b := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
					b.ID, b.PropertyName, b.TenantName, b.CheckInDate, b.NumberOfMonths,
					client.FormatRupees(b.TotalAmount), b.Status)
			}
			return tw.Flush()
		},
	}
}

func decideCommand() *Command {
	return &Command{
		Name:    "decide",
		Summary: "approve or reject a booking (owners)",
		Usage:   "decide <booking-id> approve|reject",
		Run: func(s *Shell, args []string) error {
			if err := exactArgs("decide", args, 2, "<booking-id>", "approve|reject"); err != nil {
				return err
			}
			id, err := parseID("booking id", args[0])
			if err != nil {
				return err
			}
			var status domain.BookingStatus
			switch strings.ToLower(args[1]) {
			case "approve", "approved":
				status = domain.BookingApproved
			case "reject", "rejected":
				status = domain.BookingRejected
			default:
				return fmt.Errorf("%w: decision must be approve or reject", domain.ErrInvalidInput)
			}
			if _, err := s.RequireRole(domain.RolePGOwner); err != nil {
				return err
			}
			b, err := s.Container.API.DecideBooking(s.Ctx, id, status)
			if err != nil {
				return err
			}
			s.printf("Booking %d is %s\n", b.ID, b.Status)
			return nil
		},
	}
}

func dashboardCommand() *Command {
	return &Command{
		Name:    "dashboard",
		Summary: "occupancy, pending bookings and revenue (owners)",
		Run: func(s *Shell, args []string) error {
			if _, err := s.RequireRole(domain.RolePGOwner); err != nil {
				return err
			}
			d, err := s.Container.API.Dashboard(s.Ctx)
			if err != nil {
				return err
			}
			tw := s.table()
			fmt.Fprintf(tw, "Properties\t%d\n", len(d.Properties))
			fmt.Fprintf(tw, "Rooms\t%d (%d occupied)\n", d.TotalRooms, d.OccupiedRooms)
			fmt.Fprintf(tw, "Occupancy\t%.1f%%\n", d.OccupancyPercent)
			fmt.Fprintf(tw, "Pending bookings\t%d\n", d.PendingBookings)
			fmt.Fprintf(tw, "Revenue\t%s\n", d.Revenue)
			return tw.Flush()
		},
	}
}

func inquireCommand() *Command {
	var req domain.InquiryRequest
	var property uint
	fs := pflag.NewFlagSet("inquire", pflag.ContinueOnError)
	fs.UintVar(&property, "property", 0, "property id")
	fs.StringVarP(&req.Message, "message", "m", "", "question for the owner")
	return &Command{
		Name:    "inquire",
		Summary: "ask an owner about a property",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			if _, err := s.RequireRole(domain.RoleRoomFinder); err != nil {
				return err
			}
			req.PropertyID = property
			inq, err := s.Container.API.SendInquiry(s.Ctx, req)
			if err != nil {
				return err
			}
			s.printf("Inquiry %d sent\n", inq.ID)
			return nil
		},
	}
}

func inquiriesCommand() *Command {
	return &Command{
		Name:    "inquiries",
		Summary: "questions received on your properties (owners)",
		Run: func(s *Shell, args []string) error {
			if _, err := s.RequireRole(domain.RolePGOwner); err != nil {
				return err
			}
			list, err := s.Container.API.OwnerInquiries(s.Ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				s.printf("No inquiries\n")
				return nil
			}
			tw := s.table()
			fmt.Fprintln(tw, "ID\tPROPERTY\tFROM\tMESSAGE")
			for _, q := range list {
				fmt.Fprintf(tw, "%d\t%d\t%s (id %d)\t%s\n", q.ID, q.PropertyID, q.SenderName, q.SenderID, q.Message)
			}
			return tw.Flush()
		},
	}
}
