package cmd

import (
	"fmt"
	"time"

	"github.com/factorysh/solsta/store"
	"github.com/spf13/cobra"
)

var flushAge time.Duration

func init() {
	historyCmd.Flags().DurationVar(&flushAge, "flush", 0, "Remove the records older than this age")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the recorded task executions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := cfg.EnsureDirs()
		if err != nil {
			return err
		}
		db, err := store.NewBoltStore(cfg.StorePath())
		if err != nil {
			return err
		}
		defer db.Close()
		history := store.NewHistory(db)

		if flushAge > 0 {
			n, err := history.Flush(flushAge)
			if err != nil {
				return err
			}
			logger.WithField("records", n).Info("Flushed")
		}

		records, err := history.List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range records {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Id, r.Start.Format(time.RFC3339),
				r.Node, r.Element, r.Status, r.Error)
		}
		return nil
	},
}
