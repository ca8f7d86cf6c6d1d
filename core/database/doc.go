// Package database opens the gateway's relational database connection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration, applying pool settings and
// verifying the connection with a bounded ping.
//
// Connect is invoked by the dependency bootstrap on its own goroutine; a failure here
// never stops the gateway from serving, it only makes the route groups that need the
// database answer 503.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Database unavailable", zap.Error(err))
//	}
package database
