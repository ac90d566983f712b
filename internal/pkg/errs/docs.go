// Package errs holds the generic error family shared by the domain, the application
// layer and the adapters of the restaurant service.
//
// Every kind pairs a sentinel with a struct carrying the details:
//   - ErrValueIsRequired / ValueIsRequiredError: a mandatory value is missing
//   - ErrValueIsInvalid / ValueIsInvalidError: a value failed validation
//   - ErrValueIsOutOfRange / ValueIsOutOfRangeError: a value is outside [Min, Max]
//   - ErrObjectNotFound / ObjectNotFoundError: a table, order or menu item does not exist
//   - ErrTransientStoreFailure / TransientStoreFailureError: the store timed out on a lock,
//     lost its connection or aborted a serialization conflict; the operation never
//     committed and may be retried as a whole
//
// Callers match with errors.Is against the sentinel, or errors.As for the details.
// The HTTP adapter maps the first three to 400, ObjectNotFound to 404 and
// TransientStoreFailure to 503.
package errs
