package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/factorysh/solsta/graph"
	"github.com/factorysh/solsta/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <graph.yml>",
	Short: "Run the tasks of a build graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graph.Load(args[0])
		if err != nil {
			return err
		}

		var history *store.History
		if cfg.History {
			err = cfg.EnsureDirs()
			if err != nil {
				return err
			}
			db, err := store.NewBoltStore(cfg.StorePath())
			if err != nil {
				return err
			}
			defer db.Close()
			history = store.NewHistory(db)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// a launched deployment is never killed, the next task is just not started
		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(done)
		go func() {
			select {
			case <-done:
				logger.Warn("Interrupted, stopping after the current task")
				cancel()
			case <-ctx.Done():
			}
		}()

		r := graph.NewRunner(logger, history)
		events := r.Pubsub.Subscribe(ctx)
		go func() {
			for evt := range events {
				logger.WithField("id", evt.Id).WithField("node", evt.Node).Debug(evt.Action)
			}
		}()

		tags, err := r.Run(ctx, g)
		if err != nil {
			return err
		}
		for tag, files := range tags {
			logger.WithField("tag", tag).WithField("files", len(files)).Info("Tagged")
		}
		return nil
	},
}
