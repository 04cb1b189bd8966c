// Package rostrumcmder
package rostrumcmder

import (
	"github.com/spf13/cobra"

	servecmder "github.com/rostrumlabs/rostrum/cmd/rostrum/serve"
	versioncmder "github.com/rostrumlabs/rostrum/cmd/version"
)

const rostrumLongDesc string = `Rostrum is a multi-model debate backend.

Run services using:
  rostrum serve        Run the debate API server`

const rostrumShortDesc string = "Rostrum - Multi-Model Debates"

func NewRostrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rostrum",
		Short: rostrumShortDesc,
		Long:  rostrumLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
