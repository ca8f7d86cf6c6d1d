// Package metrics exposes Prometheus request metrics for the gateway.
//
// Collectors are registered on an explicit registry (never the global default) so tests
// and multiple app instances do not collide. The /metrics route is only mounted when
// server.metrics is enabled.
package metrics
