package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"authtix/internal/app"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the platform bridge and report login state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig()
			cfg.BridgeURL = bridgeURL

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			info, err := a.Status(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Bridge:    %s\n", bridgeURL)
			fmt.Printf("Logged in: %s (%s)\n", info.Persona, info.UserID)
			fmt.Printf("App:       %s\n", info.AppID)
			return nil
		},
	}
}
