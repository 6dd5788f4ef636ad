package cmd

import (
	"fmt"

	"github.com/factorysh/solsta/graph"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write <graph.yml>",
	Short: "Write the build graph as XML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graph.Load(args[0])
		if err != nil {
			return err
		}
		err = g.Write(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}
