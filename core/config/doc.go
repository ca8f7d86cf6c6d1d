// Package config loads the gateway configuration.
//
// Values come from the process environment, optionally seeded from a .env file.
// Every key has a default declared on the owning struct through a `default` tag.
//
// # Configuration Structure
//
//   - Server: listen port (PORT or SERVER_PORT, default 4000), timeouts, body limit,
//     /metrics and /swagger toggles
//   - Database: driver (mysql or sqlite), connection details, auto-migration
//   - Storage: MinIO endpoint, credentials, media bucket, presigned URL expiry
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Addr())
package config
