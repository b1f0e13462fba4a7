// Package config provides configuration management for the Property Manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details (sqlite supported for development)
//   - Storage: S3/MinIO credentials and bucket settings for the feed archive
//   - Log: Logging level and format
//   - Sync: Calendar reconciliation engine settings (workers, timeouts, schedule)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
