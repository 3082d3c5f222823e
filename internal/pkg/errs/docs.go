// Package errs provides the error taxonomy shared by the shipment tracking service.
//
// Every typed error unwraps to a sentinel so callers can classify failures with errors.Is:
//   - ObjectNotFoundError -> ErrObjectNotFound (a referenced user, location or shipment does not exist)
//   - ForbiddenError -> ErrForbidden (the caller does not own the object)
//   - ValueIsInvalidError -> ErrValueIsInvalid (a business rule would be broken)
//   - ValueIsRequiredError -> ErrValueIsRequired (a mandatory value is missing)
//   - ValueIsOutOfRangeError -> ErrValueIsOutOfRange (a value is outside its bounds)
//
// Each type has a constructor with and without a cause. The HTTP adapter maps the
// sentinels to status codes; the core never retries or recovers from them.
package errs
