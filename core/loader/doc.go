// Package loader provides the route group mounting system.
//
// Every route group (user, doctor, admin, status) implements the Feature interface and
// is registered with a Manager. LoadAll mounts enabled features in registration order,
// each under its own prefix via a Fiber group, so a feature only ever sees the remainder
// of the path after its prefix.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    Prefix() string
//	    IsEnabled() bool
//	    Load(r fiber.Router) error
//	}
//
// Prefixes must be disjoint on segment boundaries: "/api/user" and "/api/users" may
// coexist, "/api" and "/api/user" may not.
package loader
