package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/orgforge/orgforge/pkg/config"
)

func newApplyCommand() *cobra.Command {
	var (
		batchFile       string
		continueOnError bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a configuration batch document",
		Long: `Apply a YAML batch document against the target org.

This command:
  - Loads and validates the batch document
  - Establishes a browser session via front-door injection
  - Executes operations in the fixed category order
  - Reports applied and failed entries, and records the run`,
		Example: `  # Apply a batch, aborting on the first failure
  orgforge apply --file batch.yaml

  # Attempt every operation and collect failures
  orgforge apply --file batch.yaml --continue-on-error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(batchFile)
			if err != nil {
				return err
			}

			target, err := resolveTarget()
			if err != nil {
				return err
			}

			policy := doc.ContinueOnError
			if cmd.Flags().Changed("continue-on-error") {
				policy = continueOnError
			}

			batch := doc.ToBatch()
			log.Info().
				Str("file", batchFile).
				Int("operations", batch.Len()).
				Bool("continue_on_error", policy).
				Msg("Applying batch")

			orch, cleanup, err := newOrchestrator()
			if err != nil {
				return err
			}
			defer cleanup()

			started := time.Now()
			result, runErr := orch.ApplyBatch(cmd.Context(), target, batch, policy)
			recordRun(cmd.Context(), target, result, batch.Len(), policy, started, runErr)

			if result != nil {
				fmt.Print(result.Summary())
			}
			if runErr != nil {
				return runErr
			}
			if result != nil && !result.Success() {
				return fmt.Errorf("%d operation(s) failed", len(result.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&batchFile, "file", "f", "batch.yaml", "batch document to apply")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "override the document's failure policy")
	cmd.MarkFlagRequired("file")

	return cmd
}
