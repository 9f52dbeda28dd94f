package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orgforge/orgforge/pkg/stores"
)

func newHistoryCommand() *cobra.Command {
	var (
		limit      int
		offset     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded batch runs",
		Long: `List persisted run history, newest first.

Each record carries the target instance host, the final status, and the
applied/failed entry lists. No credential material is ever stored.`,
		Example: `  # Show the last ten runs
  orgforge history

  # Show more, as JSON
  orgforge history --limit 50 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if historyPath == "" {
				return fmt.Errorf("run history is disabled (--history-db is empty)")
			}

			store, err := stores.NewSQLiteStore(stores.Config{Path: historyPath})
			if err != nil {
				return err
			}
			if err := store.Init(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			runs, err := store.ListRuns(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			if jsonOutput {
				out, err := json.MarshalIndent(runs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			if len(runs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}
			for _, run := range runs {
				duration := ""
				if run.CompletedAt != nil {
					duration = run.CompletedAt.Sub(run.StartedAt).Round(100 * time.Millisecond).String()
				}
				fmt.Printf("%s  %-9s  %-30s  ops=%d  %s  %s\n",
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Status,
					run.InstanceHost,
					run.Operations,
					duration,
					shortID(run.ID),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "runs to skip")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
