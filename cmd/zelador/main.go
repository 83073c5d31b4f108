package main

import (
	"os"

	"github.com/spf13/cobra"

	"zelador/internal/interfaces/cli/migrate"
	"zelador/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zelador",
		Short: "Zelador - condominium maintenance request management",
		Long:  `Zelador manages condominium maintenance requests: supplier dispatch via tokenized email links, scheduling, photo-verified completion and escalation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
