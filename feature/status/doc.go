// Package status serves the gateway's two self-contained routes.
//
//   - GET /       : fixed plain-text welcome.
//   - GET /status : HTML status page rendered from an embedded template.
//
// The status page always reports every subsystem as healthy; only the "Last Updated"
// timestamp reflects the moment of the request. It is a presentation page and must not
// be wired to real health probes.
package status
