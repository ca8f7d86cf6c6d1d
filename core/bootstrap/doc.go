// Package bootstrap runs the process-wide dependency initializers.
//
// The database and media storage connections are set up once, at process start, without
// gating the HTTP listener: Start returns immediately and the gateway accepts traffic
// while the initializers run. Route groups receive the resulting *Dependencies by
// injection and ask it for a handle per request; until an initializer has finished the
// handle is reported as ErrNotReady, and after a failure as ErrUnavailable.
//
// State tracks Initializing → Ready | Degraded for logging and the check command. It is
// never used to hold back requests.
package bootstrap
