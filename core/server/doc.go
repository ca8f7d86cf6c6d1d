// Package server assembles the HTTP gateway.
//
// New wires the middleware chain and mounts the route groups registered with a
// loader.Manager. The chain, outermost first:
//
//  1. RayID: request id in locals and the X-Ray-ID header.
//  2. RequestLog: one access log line per request.
//  3. Metrics (optional): Prometheus observations per matched route.
//  4. Recover: panics in any later handler become a generic 500.
//  5. JSONBody: JSON bodies decoded once; malformed JSON is a 400.
//  6. CORS: any origin allowed.
//
// The error handler keeps the status of fiber errors (404 for unmatched routes) and
// turns every other error into a logged, generic 500, so a failing route group never
// takes the listener down.
//
// # Configuration
//
// Config carries the listen port (PORT, default 4000, invalid values fall back to the
// default), server timeouts, the body limit and the toggles for /metrics and /swagger.
package server
