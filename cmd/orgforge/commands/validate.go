package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/orgforge/orgforge/pkg/config"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a batch document offline",
		Long: `Validate a YAML batch document without touching any org.

This command checks:
  - YAML syntax, rejecting unknown fields
  - Required fields per operation (object, flow API name, email address)
  - Field constraints (email format, minimum session timeout)`,
		Example: `  # Validate a batch document
  orgforge validate batch.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(args[0])
			if err != nil {
				return err
			}

			batch := doc.ToBatch()
			log.Debug().Str("file", args[0]).Msg("document validated")

			fmt.Printf("%s is valid: %d operation(s)\n", args[0], batch.Len())
			for _, op := range batch.Operations() {
				fmt.Printf("  %s\n", op.Label())
			}
			return nil
		},
	}

	return cmd
}
