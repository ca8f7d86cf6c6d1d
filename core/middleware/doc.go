// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the route groups.
//
// # Components
//
//   - RayID: assigns a unique request id to every request, storing it in the context and
//     echoing it in the X-Ray-ID response header for tracing.
//   - JSONBody: decodes JSON request bodies once at the gateway and rejects malformed
//     payloads with 400 before any route group sees them.
//   - RequestLog: writes one structured access log line per request.
//
// CORS and panic recovery use Fiber's bundled middleware and are wired in core/server.
package middleware
