// Package services provides domain services that need more than one aggregate or
// a repository lookup to decide a business rule.
//
// The package includes:
//   - OwnershipGuard: the authorization checks binding locations and shipments to
//     the user who owns them
package services
