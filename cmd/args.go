package cmd

import (
	"fmt"

	"github.com/factorysh/solsta/graph"
	"github.com/factorysh/solsta/solsta"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(argsCmd)
}

var argsCmd = &cobra.Command{
	Use:   "args <graph.yml>",
	Short: "Print the release_deploy command lines, without running them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graph.Load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, step := range g.Steps {
			t, ok := step.Task.(*solsta.Task)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "# %s\n%s %s\n", step.Node, t.Executable(g.BaseDir), t.CommandLine(g.BaseDir))
		}
		return nil
	},
}
