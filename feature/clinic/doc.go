// Package clinic holds what the user, doctor and admin route groups share: the gorm
// models, the Directory repository over them, and the mapping of domain and dependency
// errors to HTTP responses.
//
// Route groups never hold a database handle directly. They receive a Handles value at
// construction and resolve the handle per request, so a database that is still
// connecting, or failed to connect, turns into a 503 for that request only.
package clinic
