package queries

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentLister reads a window of a sender's shipments ordered by ascending id.
type ShipmentLister interface {
	ListBySender(ctx context.Context, senderID kernel.ID, offset int, limit int) ([]*shipment.Shipment, error)
}

// GetShipmentsQueryResponse is one page of shipments with their derived status.
// Every item was derived against DerivedAt.
type GetShipmentsQueryResponse struct {
	Items     []shipment.Snapshot
	Page      int
	PerPage   int
	DerivedAt time.Time
}

// GetShipmentsQueryHandler lists a sender's shipments window-first, then derives
// and filters. The status filter compares against the label rendered under the
// configured scheme, so what the caller filters on is what the caller sees.
type GetShipmentsQueryHandler struct {
	shipments ShipmentLister
	clock     kernel.Clock
	scheme    shipment.Scheme
}

// NewGetShipmentsQueryHandler creates a handler for shipment listings.
func NewGetShipmentsQueryHandler(
	shipments ShipmentLister,
	clock kernel.Clock,
	scheme shipment.Scheme,
) GetShipmentsQueryHandler {
	return GetShipmentsQueryHandler{
		shipments: shipments,
		clock:     clock,
		scheme:    scheme,
	}
}

// Handle fetches the page window, derives every status against one shared instant
// and drops items whose label does not match the requested status.
func (h GetShipmentsQueryHandler) Handle(ctx context.Context, query GetShipmentsQuery) (GetShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentsQueryResponse{}, err
	}

	window, err := h.shipments.ListBySender(ctx, query.UserID(), query.Offset(), query.PerPage())
	if err != nil {
		return GetShipmentsQueryResponse{}, err
	}

	now := h.clock.Now()
	items := make([]shipment.Snapshot, 0, len(window))
	for _, snap := range shipment.SnapshotAll(window, now) {
		if query.Status() != nil && snap.Label(h.scheme) != *query.Status() {
			continue
		}
		items = append(items, snap)
	}

	return GetShipmentsQueryResponse{
		Items:     items,
		Page:      query.Page(),
		PerPage:   query.PerPage(),
		DerivedAt: now,
	}, nil
}
