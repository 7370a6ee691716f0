package main

import (
	"log"

	"github.com/pmfaria/shopfloor-api/internal/config"
	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/spf13/cobra"
)

// shopfloorctl bundles the administrative paths that are not part of the
// request-serving contract: seeding, resetting, and the machine catalog
// import. It talks to the same store through the same models.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopfloorctl",
		Short: "Administrative tooling for the shopfloor orders database",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return database.Connect(cfg)
		},
	}

	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newImportMachinesCommand())

	return cmd
}
