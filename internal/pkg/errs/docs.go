// Package errs provides the standardized error kinds used across the order
// lifecycle and dispatch core.
//
// Each kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// The HTTP adapter maps these kinds onto status codes; nothing in the core
// inspects error strings.
package errs
