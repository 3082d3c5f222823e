// Package shipment provides the Shipment aggregate and the rules that derive its
// human-facing status.
//
// The package includes:
//   - Shipment: the aggregate root tracking a parcel between two locations
//   - Size: the package size enumeration (S, M, L, XL)
//   - Status and DeriveStatus: the status label computed from the pickup, expected
//     delivery and delivery timestamps
//   - Snapshot: a shipment paired with the status derived for it at a given instant
//
// Key business rules:
//   - Origin and destination must differ
//   - Origin and sender are fixed once the shipment exists
//   - A shipment that has been picked up can no longer be removed
//   - Status is never stored; it is derived every time a shipment leaves the core
package shipment
