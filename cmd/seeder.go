package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
)

type seedUser struct {
	email, name string
}

type seedLocation struct {
	owner    int
	nickname string
	address1 string
	city     string
	lat, lng float64
}

// seedShipment references users and locations by their index in the seed tables.
// Offsets are relative to the moment the seed runs.
type seedShipment struct {
	sender      int
	origin      int
	destination int
	size        shipment.Size
	pickupAt    time.Duration
	eta         time.Duration
	deliveredAt *time.Duration
	notes       string
}

var (
	seedUsers = []seedUser{
		{"alice@example.com", "Alice"},
		{"bob@example.com", "Bob"},
	}

	seedLocations = []seedLocation{
		{0, "Home", "1 Main St", "Madrid", 40.4168, -3.7038},
		{0, "Office", "2 Gran Via", "Madrid", 40.42, -3.705},
		{0, "Warehouse", "3 Calle A", "Barcelona", 41.3874, 2.1686},
		{1, "Home", "10 Market St", "Valencia", 39.4699, -0.3763},
		{1, "Office", "11 Office Rd", "Seville", 37.3891, -5.9845},
		{1, "Warehouse", "12 Docks", "Bilbao", 43.263, -2.935},
	}

	seedShipments = []seedShipment{
		{0, 0, 2, shipment.SizeM, -2 * time.Hour, 6 * time.Hour, nil, "Books"},
		{0, 1, 3, shipment.SizeS, -10 * time.Hour, -2 * time.Hour, hours(-3), "Small parcel"},
		{0, 2, 4, shipment.SizeXL, -20 * time.Hour, -5 * time.Hour, hours(-1), "Furniture"},
		{1, 3, 0, shipment.SizeL, -1 * time.Hour, 12 * time.Hour, nil, "Clothes"},
		{1, 4, 1, shipment.SizeM, -8 * time.Hour, -1 * time.Hour, hours(-1), "Docs"},
		{1, 5, 2, shipment.SizeS, -30 * time.Hour, -10 * time.Hour, hours(-2), "Gadgets"},
		{0, 0, 5, shipment.SizeXL, 5 * time.Hour, 24 * time.Hour, nil, "Scheduled pickup"},
		{1, 3, 1, shipment.SizeL, -15 * time.Hour, -2 * time.Hour, hours(-2), "Hardware"},
	}
)

func hours(h time.Duration) *time.Duration {
	d := h * time.Hour
	return &d
}

// SeedResult reports what Seed created.
type SeedResult struct {
	Users     []kernel.ID
	Locations []kernel.ID
	Shipments []kernel.ID
	// Skipped is set when the demo users already existed and nothing was written.
	Skipped bool
}

// Seed loads the demo users, locations and shipments through the use-case handlers.
// Running it again is a no-op once the demo users exist.
func (c *CompositionRoot) Seed(ctx context.Context) (SeedResult, error) {
	users := c.uowFactory.Create().UserRepository()
	for _, u := range seedUsers {
		_, err := users.GetByEmail(ctx, u.email)
		if err == nil {
			c.logger.InfoContext(ctx, "Demo data already present", "email", u.email)
			return SeedResult{Skipped: true}, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return SeedResult{}, err
		}
	}

	var result SeedResult
	createUser := c.CreateCreateUserCommandHandler()
	for _, u := range seedUsers {
		cmd, err := commands.NewCreateUserCommand(u.email, &u.name)
		if err != nil {
			return result, err
		}
		created, err := createUser.Handle(ctx, cmd)
		if err != nil {
			return result, fmt.Errorf("create user %s: %w", u.email, err)
		}
		result.Users = append(result.Users, created.ID())
	}

	createLocation := c.CreateCreateLocationCommandHandler()
	for _, l := range seedLocations {
		cmd, err := commands.NewCreateLocationCommand(
			result.Users[l.owner],
			l.nickname,
			commands.AddressInput{Line1: l.address1, City: l.city, Country: "ES"},
			l.lat,
			l.lng,
		)
		if err != nil {
			return result, err
		}
		created, err := createLocation.Handle(ctx, cmd)
		if err != nil {
			return result, fmt.Errorf("create location %s of user %d: %w", l.nickname, l.owner, err)
		}
		result.Locations = append(result.Locations, created.ID())
	}

	now := c.clock.Now()
	createShipment := c.CreateCreateShipmentCommandHandler()
	markDelivered := c.CreateMarkShipmentDeliveredCommandHandler()
	for _, s := range seedShipments {
		sender := result.Users[s.sender]
		pickupAt := now.Add(s.pickupAt)
		eta := now.Add(s.eta)

		cmd, err := commands.NewCreateShipmentCommand(
			sender,
			result.Locations[s.origin],
			result.Locations[s.destination],
			s.size,
			&pickupAt,
			&eta,
			&s.notes,
		)
		if err != nil {
			return result, err
		}
		created, err := createShipment.Handle(ctx, cmd)
		if err != nil {
			return result, fmt.Errorf("create shipment %q: %w", s.notes, err)
		}
		id := created.Shipment.ID()
		result.Shipments = append(result.Shipments, id)

		if s.deliveredAt == nil {
			continue
		}
		deliveredAt := now.Add(*s.deliveredAt)
		deliver, err := commands.NewMarkShipmentDeliveredCommand(id, sender, &deliveredAt)
		if err != nil {
			return result, err
		}
		if _, err := markDelivered.Handle(ctx, deliver); err != nil {
			return result, fmt.Errorf("deliver shipment %q: %w", s.notes, err)
		}
	}

	c.logger.InfoContext(ctx, "Seeded demo data",
		"users", len(result.Users),
		"locations", len(result.Locations),
		"shipments", len(result.Shipments))
	return result, nil
}
