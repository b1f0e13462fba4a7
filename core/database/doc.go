// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. A sqlite driver is also
// supported, which the test suites use for fast in-memory databases.
//
// # Connect
//
// The Connect function establishes a connection to the database and verifies it with
// a bounded ping. Schema creation is handled by the application entry point through
// GORM auto-migration of the feature models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
