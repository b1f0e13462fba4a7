package calendar

// Config holds configuration for the calendar reconciliation engine.
type Config struct {
	// Workers bounds how many properties a batch run syncs concurrently.
	Workers int `mapstructure:"workers" default:"5"`
	// FetchTimeoutSeconds bounds a single feed retrieval.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"15"`
	// Schedule is a cron expression for periodic batch syncs (e.g. "@every 30m").
	// Empty disables the scheduler; syncs then run only on demand.
	Schedule string `mapstructure:"schedule" default:""`
	// Archive enables archiving raw feed snapshots to object storage.
	Archive bool `mapstructure:"archive" default:"false"`
}
