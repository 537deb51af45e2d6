package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"authtix/internal/app"
	"authtix/internal/logger"
)

var (
	bridgeURL string
	logLevel  string
	logFormat string
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		return ExitCode(err)
	}
	return ExitOK
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "authtix",
		Short:        "Fetch a short-lived auth ticket from the identity platform and deliver it",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{Level: logLevel, Format: logFormat})
		},
	}

	root.PersistentFlags().StringVar(&bridgeURL, "bridge", app.DefaultBridgeURL, "platform bridge base URL")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	root.AddCommand(fetchCmd(), statusCmd())
	return root
}
