// Package api contains the HTTP handlers for the public REST surface:
// registration, login and logout, the task collection, and the caller's
// profile. Handlers validate input, call the services, and translate
// service errors into HTTP status codes via MapErrorToStatusCode.
package api
