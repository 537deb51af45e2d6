package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"authtix/internal/app"
	"authtix/internal/domain"
)

func fetchCmd() *cobra.Command {
	var (
		output   string
		endpoint string
		email    string
		exitNow  bool
		audience string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Acquire a ticket and deliver it to a file or remote endpoint",
		Long: `Fetch requests one authentication ticket from the running platform client
and delivers it. A remote endpoint, when given, takes precedence over the
output file. Unless --exit is set, the session is held open briefly after
delivery so the remote side can validate the ticket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig()
			cfg.BridgeURL = bridgeURL
			cfg.OutputFile = output
			cfg.RemoteURL = endpoint
			cfg.Email = email
			cfg.ExitImmediately = exitNow
			cfg.Audience = audience
			cfg.AcquireTimeout = timeout

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			if err := a.Fetch(cmd.Context()); err != nil {
				return err
			}

			if target := cfg.Target(); target.Kind == domain.TargetRemote {
				fmt.Printf("Ticket accepted by %s\n", target)
			} else {
				fmt.Printf("Ticket written to %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", app.DefaultOutputFile, "ticket output file")
	cmd.Flags().StringVarP(&endpoint, "url", "u", "", "endpoint to POST the ticket to (overrides --output)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email to include in the POST body")
	cmd.Flags().BoolVarP(&exitNow, "exit", "x", false, "exit immediately after delivery")
	cmd.Flags().StringVar(&audience, "audience", app.DefaultAudience, "relying-party name the ticket is requested for")
	cmd.Flags().DurationVar(&timeout, "timeout", app.DefaultAcquireTimeout, "acquisition deadline")
	return cmd
}
