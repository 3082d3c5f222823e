package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/pkg/errs"
)

// MaxNotesLength is the longest free-text note a shipment may carry.
const MaxNotesLength = 1000

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created through
	// NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrOriginEqualsDestination is returned when origin and destination are the same location.
	ErrOriginEqualsDestination = errs.NewValueIsInvalidErrorWithCause(
		"destinationLocationId", errors.New("origin and destination must be different locations"))

	// ErrShipmentIsPickedUp is returned when removing a shipment that already has a pickup time.
	ErrShipmentIsPickedUp = errs.NewValueIsInvalidErrorWithCause(
		"shipment", errors.New("picked up shipments cannot be removed"))

	// The following errors are only produced under the Strict transition policy.

	ErrPickupAlreadyRecorded = errs.NewValueIsInvalidErrorWithCause(
		"pickupAt", errors.New("pickup is already recorded"))
	ErrShipmentAlreadyDelivered = errs.NewValueIsInvalidErrorWithCause(
		"deliveredAt", errors.New("shipment is already delivered"))
	ErrShipmentIsNotPickedUp = errs.NewValueIsInvalidErrorWithCause(
		"pickupAt", errors.New("shipment has not been picked up"))
	ErrDeliveryPrecedesPickup = errs.NewValueIsInvalidErrorWithCause(
		"deliveredAt", errors.New("delivery cannot be earlier than pickup"))
)

// TransitionPolicy controls how strictly pickup and delivery are checked.
type TransitionPolicy int

const (
	// Permissive accepts repeated pickups and delivery without a recorded pickup.
	// Each call simply overwrites the timestamp.
	Permissive TransitionPolicy = iota
	// Strict rejects a second pickup, a pickup after delivery, a second delivery,
	// delivery without pickup and delivery earlier than pickup.
	Strict
)

// PolicyFor returns Strict when strict is true and Permissive otherwise.
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return Strict
	}
	return Permissive
}

func (p TransitionPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// Shipment is the aggregate root tracking a parcel sent by one user from one of the
// user's locations to any other location.
//
// Shipment follows these invariants:
//   - Origin and destination are different locations
//   - Sender and origin never change after creation
//   - Once picked up, the shipment can no longer be removed
//   - Status is not a field; it is derived from the timestamps on demand
//
// Ownership of the origin by the sender is checked by the OwnershipGuard domain
// service, which needs repository access the aggregate does not have.
type Shipment struct {
	// id is assigned by the repository; zero until persisted
	id kernel.ID

	senderID      kernel.ID
	originID      kernel.ID
	destinationID kernel.ID

	size Size

	// pickupAt is nil until the parcel has been picked up
	pickupAt           *time.Time
	expectedDeliveryAt *time.Time
	// deliveredAt is nil until the parcel has been delivered
	deliveredAt *time.Time

	notes     *string
	createdAt time.Time

	// origin and destination are populated only when loaded from a repository
	origin      *location.Location
	destination *location.Location

	isConstructed bool
}

// NewShipment creates a new, not yet persisted Shipment with no delivery recorded.
//
// Parameters:
//   - senderID: the user sending the parcel
//   - originID, destinationID: the endpoints (must differ)
//   - size: one of SizeS, SizeM, SizeL, SizeXL
//   - pickupAt, expectedDeliveryAt: optional schedule
//   - notes: optional free text, blank notes are stored as nil
//
// Example:
//
//	eta := time.Now().Add(24 * time.Hour)
//	s, err := shipment.NewShipment(alice, home, office, shipment.SizeM, nil, &eta, nil)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // origin equals destination, or size is invalid
//	}
func NewShipment(
	senderID kernel.ID,
	originID kernel.ID,
	destinationID kernel.ID,
	size Size,
	pickupAt *time.Time,
	expectedDeliveryAt *time.Time,
	notes *string,
) (*Shipment, error) {
	s := &Shipment{
		pickupAt:           cloneTime(pickupAt),
		expectedDeliveryAt: cloneTime(expectedDeliveryAt),
		isConstructed:      true,
	}

	if err := errors.Join(
		s.setSenderID(senderID),
		s.setEndpoints(originID, destinationID),
		s.setSize(size),
		s.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// State is the persisted form of a Shipment, used by repositories to rebuild it.
type State struct {
	ID                 kernel.ID
	SenderID           kernel.ID
	OriginID           kernel.ID
	DestinationID      kernel.ID
	Size               Size
	PickupAt           *time.Time
	ExpectedDeliveryAt *time.Time
	DeliveredAt        *time.Time
	Notes              *string
	CreatedAt          time.Time

	// Origin and Destination are optional preloaded endpoints. When present their IDs
	// must match OriginID and DestinationID.
	Origin      *location.Location
	Destination *location.Location
}

// RestoreShipment rebuilds a Shipment from its persisted state. The same invariants
// as NewShipment are checked so corrupted rows surface as errors.
func RestoreShipment(state State) (*Shipment, error) {
	if err := state.ID.Validate(); err != nil {
		return nil, err
	}

	s, err := NewShipment(
		state.SenderID,
		state.OriginID,
		state.DestinationID,
		state.Size,
		state.PickupAt,
		state.ExpectedDeliveryAt,
		state.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(
		checkEndpoint("origin", state.OriginID, state.Origin),
		checkEndpoint("destination", state.DestinationID, state.Destination),
	); err != nil {
		return nil, err
	}

	s.id = state.ID
	s.deliveredAt = cloneTime(state.DeliveredAt)
	s.createdAt = state.CreatedAt
	s.origin = state.Origin
	s.destination = state.Destination
	return s, nil
}

// Validate ensures the Shipment was created via NewShipment or RestoreShipment.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the repository-assigned identifier, zero for a new shipment.
func (s *Shipment) ID() kernel.ID {
	return s.id
}

// SenderID returns the user who sent the shipment.
func (s *Shipment) SenderID() kernel.ID {
	return s.senderID
}

// OriginID returns the origin location identifier.
func (s *Shipment) OriginID() kernel.ID {
	return s.originID
}

// DestinationID returns the destination location identifier.
func (s *Shipment) DestinationID() kernel.ID {
	return s.destinationID
}

// Size returns the package size.
func (s *Shipment) Size() Size {
	return s.size
}

// PickupAt returns the pickup time, or nil when not picked up.
func (s *Shipment) PickupAt() *time.Time {
	return cloneTime(s.pickupAt)
}

// ExpectedDeliveryAt returns the promised delivery time, or nil when none was given.
func (s *Shipment) ExpectedDeliveryAt() *time.Time {
	return cloneTime(s.expectedDeliveryAt)
}

// DeliveredAt returns the delivery time, or nil when not delivered.
func (s *Shipment) DeliveredAt() *time.Time {
	return cloneTime(s.deliveredAt)
}

// Notes returns the free-text note, or nil.
func (s *Shipment) Notes() *string {
	return s.notes
}

// CreatedAt returns the creation time set by the repository.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// Origin returns the preloaded origin location, or nil if it was not loaded.
func (s *Shipment) Origin() *location.Location {
	return s.origin
}

// Destination returns the preloaded destination location, or nil if it was not loaded.
func (s *Shipment) Destination() *location.Location {
	return s.destination
}

// IsSentBy reports whether userID is the sender.
func (s *Shipment) IsSentBy(userID kernel.ID) bool {
	return s.senderID.IsEqual(userID)
}

// IsPickedUp reports whether a pickup time is recorded.
func (s *Shipment) IsPickedUp() bool {
	return s.pickupAt != nil
}

// IsDelivered reports whether a delivery time is recorded.
func (s *Shipment) IsDelivered() bool {
	return s.deliveredAt != nil
}

// ChangeDestination points the shipment at another location. The new destination
// must differ from the origin. A preloaded destination is dropped because it no
// longer matches.
func (s *Shipment) ChangeDestination(destinationID kernel.ID) error {
	if err := s.setEndpoints(s.originID, destinationID); err != nil {
		return err
	}
	if s.destination != nil && !s.destination.ID().IsEqual(destinationID) {
		s.destination = nil
	}
	return nil
}

// ChangeSize replaces the package size.
func (s *Shipment) ChangeSize(size Size) error {
	return s.setSize(size)
}

// ChangeExpectedDeliveryAt replaces the promised delivery time. nil clears it.
func (s *Shipment) ChangeExpectedDeliveryAt(expectedDeliveryAt *time.Time) {
	s.expectedDeliveryAt = cloneTime(expectedDeliveryAt)
}

// MarkPickedUp records the pickup time.
//
// Under Permissive the call always succeeds and overwrites any previous pickup.
// Under Strict it fails with ErrPickupAlreadyRecorded or ErrShipmentAlreadyDelivered.
func (s *Shipment) MarkPickedUp(at time.Time, policy TransitionPolicy) error {
	if policy == Strict {
		if s.deliveredAt != nil {
			return ErrShipmentAlreadyDelivered
		}
		if s.pickupAt != nil {
			return ErrPickupAlreadyRecorded
		}
	}

	s.pickupAt = &at
	return nil
}

// MarkDelivered records the delivery time.
//
// Under Permissive the call always succeeds, even without a recorded pickup.
// Under Strict the shipment must be picked up, not yet delivered, and at must not
// precede the pickup.
func (s *Shipment) MarkDelivered(at time.Time, policy TransitionPolicy) error {
	if policy == Strict {
		switch {
		case s.deliveredAt != nil:
			return ErrShipmentAlreadyDelivered
		case s.pickupAt == nil:
			return ErrShipmentIsNotPickedUp
		case at.Before(*s.pickupAt):
			return ErrDeliveryPrecedesPickup
		}
	}

	s.deliveredAt = &at
	return nil
}

// EnsureRemovable returns ErrShipmentIsPickedUp once a pickup is recorded.
func (s *Shipment) EnsureRemovable() error {
	if s.pickupAt != nil {
		return ErrShipmentIsPickedUp
	}
	return nil
}

// Derive computes the status at instant now.
func (s *Shipment) Derive(now time.Time) Derivation {
	return DeriveStatus(s.pickupAt, s.expectedDeliveryAt, s.deliveredAt, now)
}

// Snapshot pairs the shipment with its status derived at now.
func (s *Shipment) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Shipment:   s,
		Derivation: s.Derive(now),
		DerivedAt:  now,
	}
}

// DistanceKm returns the great-circle distance between origin and destination, or
// nil when either endpoint was not loaded.
func (s *Shipment) DistanceKm() *int {
	if s.origin == nil || s.destination == nil {
		return nil
	}
	d, err := s.origin.DistanceKm(s.destination)
	if err != nil {
		return nil
	}
	return &d
}

func (s *Shipment) setSenderID(senderID kernel.ID) error {
	if err := senderID.Validate(); err != nil {
		return fmt.Errorf("senderUserId: %w", err)
	}
	s.senderID = senderID
	return nil
}

func (s *Shipment) setEndpoints(originID, destinationID kernel.ID) error {
	if err := errors.Join(originID.Validate(), destinationID.Validate()); err != nil {
		return err
	}
	if originID.IsEqual(destinationID) {
		return ErrOriginEqualsDestination
	}
	s.originID = originID
	s.destinationID = destinationID
	return nil
}

func (s *Shipment) setSize(size Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	s.size = size
	return nil
}

func (s *Shipment) setNotes(notes *string) error {
	if notes == nil {
		s.notes = nil
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		s.notes = nil
		return nil
	}
	if len(trimmed) > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(trimmed), 1, MaxNotesLength)
	}
	s.notes = &trimmed
	return nil
}

func checkEndpoint(name string, id kernel.ID, loc *location.Location) error {
	if loc == nil {
		return nil
	}
	if !loc.ID().IsEqual(id) {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("loaded location %s does not match %s", loc.ID(), id))
	}
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
