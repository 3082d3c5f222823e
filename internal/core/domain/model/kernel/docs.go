// Package kernel provides the primitives shared by every aggregate of the shipment
// tracking domain.
//
// The package includes:
//   - ID: a positive integer identifier assigned by the repository
//   - GeoPoint: a latitude/longitude value object with great-circle distance
//   - Clock: the source of "now" used when deriving shipment statuses
//
// Value objects are immutable and guarded against zero-value construction.
package kernel
