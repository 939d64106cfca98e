// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It keeps error handling consistent by:
//   - Providing sentinel errors that stores return and callers check with errors.Is.
//   - Providing a structured Error type that carries a message, type, and code,
//     which inbound handlers map to HTTP status codes.
package pkgerror
