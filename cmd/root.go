package cmd

import (
	"fmt"
	"os"

	"property-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "property-manager",
	Short: "Property Manager Service",
	Long: `Property Manager keeps a fleet of rental properties in sync with the
booking channels that publish their calendars. It fetches each channel's
iCalendar feed, reconciles it against the stored events and serves the merged
internal calendar over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives readable ISO8601 output for a
		// CLI invocation instead of the production JSON encoding.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
