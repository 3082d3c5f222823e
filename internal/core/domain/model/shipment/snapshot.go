package shipment

import "time"

// Snapshot is a shipment together with the status derived for it at DerivedAt.
// Everything the core hands back to a caller is a Snapshot, so a shipment never
// leaves without its status.
//
// Clients should display Status as given rather than re-deriving it against their
// own clock.
type Snapshot struct {
	Shipment *Shipment
	Derivation
	DerivedAt time.Time
}

// IsDeliveredLate returns the late flag only for delivered shipments, nil otherwise.
func (s Snapshot) IsDeliveredLate() *bool {
	if s.Status != Delivered {
		return nil
	}
	late := s.DeliveredLate
	return &late
}

// SnapshotAll derives every shipment against the same instant.
func SnapshotAll(shipments []*Shipment, now time.Time) []Snapshot {
	out := make([]Snapshot, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, s.Snapshot(now))
	}
	return out
}
