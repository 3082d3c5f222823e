package shipment

import (
	"fmt"
	"strings"
	"time"

	"shiptrack/internal/pkg/errs"
)

// Status is the human-facing state of a shipment. It is derived from timestamps
// and never persisted.
//
// Derivation rules, evaluated in order:
//
//	deliveredAt set                    -> Delivered
//	pickupAt set and not in the future -> InTransit
//	expectedDeliveryAt not yet passed  -> InTransit
//	otherwise                          -> OnTime
//
// Delayed is only produced by the Legacy scheme, which folds Delivered into
// OnTime or Delayed depending on whether the delivery was late.
type Status int

const (
	// StatusUnknown is the zero value. DeriveStatus never returns it.
	StatusUnknown Status = iota
	InTransit
	OnTime
	Delayed
	Delivered
)

var statusLabels = map[Status]string{
	InTransit: "In Transit",
	OnTime:    "On Time",
	Delayed:   "Delayed",
	Delivered: "Delivered",
}

// ParseStatus accepts a status label in any letter case, with spaces, underscores
// or dashes between words ("In Transit", "in_transit", "IN-TRANSIT", "intransit").
func ParseStatus(label string) (Status, error) {
	key := statusKey(label)
	for status, l := range statusLabels {
		if statusKey(l) == key {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of In Transit, On Time, Delayed, Delivered", label),
	)
}

func statusKey(label string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(label)))
}

// Validate reports whether the status is one of the four labels.
func (s Status) Validate() error {
	if _, ok := statusLabels[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// Scheme selects how a Derivation is rendered.
type Scheme int

const (
	// Canonical renders the four-status label; delivered shipments are Delivered.
	Canonical Scheme = iota
	// Legacy renders delivered shipments as OnTime or Delayed.
	Legacy
)

// ParseScheme converts "canonical" or "legacy" into a Scheme. An empty string is Canonical.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "canonical":
		return Canonical, nil
	case "legacy":
		return Legacy, nil
	default:
		return Canonical, errs.NewValueIsInvalidErrorWithCause(
			"status scheme", fmt.Errorf("%q is not one of canonical, legacy", name))
	}
}

func (s Scheme) String() string {
	if s == Legacy {
		return "legacy"
	}
	return "canonical"
}

// Derivation is the outcome of DeriveStatus.
type Derivation struct {
	Status Status
	// DeliveredLate is meaningful only when Status is Delivered.
	DeliveredLate bool
}

// Label renders the derivation under the given scheme.
func (d Derivation) Label(scheme Scheme) Status {
	if scheme == Legacy && d.Status == Delivered {
		if d.DeliveredLate {
			return Delayed
		}
		return OnTime
	}
	return d.Status
}

// DeriveStatus computes the status of a shipment at instant now. It is total: every
// combination of nil and non-nil timestamps yields exactly one of InTransit, OnTime
// or Delivered.
func DeriveStatus(pickupAt, expectedDeliveryAt, deliveredAt *time.Time, now time.Time) Derivation {
	if deliveredAt != nil {
		return Derivation{
			Status:        Delivered,
			DeliveredLate: IsDeliveredLate(expectedDeliveryAt, deliveredAt),
		}
	}

	if pickupAt != nil && !pickupAt.After(now) {
		return Derivation{Status: InTransit}
	}

	if expectedDeliveryAt != nil && !expectedDeliveryAt.Before(now) {
		return Derivation{Status: InTransit}
	}

	return Derivation{Status: OnTime}
}

// IsDeliveredLate reports whether delivery happened after the expected delivery time.
// Without an expected delivery time nothing was promised, so it is never late.
func IsDeliveredLate(expectedDeliveryAt, deliveredAt *time.Time) bool {
	if deliveredAt == nil || expectedDeliveryAt == nil {
		return false
	}
	return deliveredAt.After(*expectedDeliveryAt)
}
