// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"math"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

const (
	// DefaultPage is the page used when the caller gives none.
	DefaultPage = 1
	// DefaultPerPage is the page size used when the caller gives none.
	DefaultPerPage = 20
	// MaxPerPage is the largest accepted page size.
	MaxPerPage = 100
)

var ErrGetShipmentsQueryIsNotConstructed = errors.New(
	"GetShipmentsQuery must be created via NewGetShipmentsQuery constructor",
)

// GetShipmentsQuery lists one page of a sender's shipments, optionally keeping only
// those with the given status.
//
// Pagination is applied before the status filter, because status is derived and
// cannot be queried in storage. A page may therefore hold fewer than perPage items
// even when later pages still contain matches.
//
// Example:
//
//	delivered := shipment.Delivered
//	query, err := NewGetShipmentsQuery(userID, &delivered, 1, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid paging: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, query)
//	for _, s := range result.Items {
//	    fmt.Println(s.Shipment.ID(), s.Status)
//	}
type GetShipmentsQuery struct { //nolint:recvcheck //using for validation
	userID  kernel.ID
	status  *shipment.Status
	page    int
	perPage int

	guard guard.ConstructorGuard
}

// MaxPageFor is the last page whose offset still fits in an int for the given page size.
func MaxPageFor(perPage int) int {
	return math.MaxInt / max(perPage, 1)
}

// NewGetShipmentsQuery validates 1 <= page <= MaxPageFor(perPage) and 1 <= perPage <= MaxPerPage.
func NewGetShipmentsQuery(userID kernel.ID, status *shipment.Status, page int, perPage int) (GetShipmentsQuery, error) {
	var statusErr, pageErr, perPageErr error

	if status != nil {
		statusErr = status.Validate()
	}
	if page < 1 || page > MaxPageFor(perPage) {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 1, MaxPageFor(perPage))
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPageErr = errs.NewValueIsOutOfRangeError("perPage", perPage, 1, MaxPerPage)
	}

	if err := errors.Join(userID.Validate(), statusErr, pageErr, perPageErr); err != nil {
		return GetShipmentsQuery{}, err
	}

	return GetShipmentsQuery{
		userID:  userID,
		status:  status,
		page:    page,
		perPage: perPage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsQueryIsNotConstructed)
}

func (q GetShipmentsQuery) UserID() kernel.ID        { return q.userID }
func (q GetShipmentsQuery) Status() *shipment.Status { return q.status }
func (q GetShipmentsQuery) Page() int                { return q.page }
func (q GetShipmentsQuery) PerPage() int             { return q.perPage }

// Offset is the number of rows skipped before the page window.
func (q GetShipmentsQuery) Offset() int {
	return (q.page - 1) * q.perPage
}
