// Package location provides the Location aggregate: a named address owned by
// exactly one user, used as the origin or destination of shipments.
package location
