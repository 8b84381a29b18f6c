package main

import (
	"github.com/spf13/cobra"

	"github.com/psaab/vyconf/pkg/configtree"
)

var (
	diffCommands bool
	diffPath     []string
)

func init() {
	cmd := newDiffCmd()
	cmd.Flags().BoolVar(&diffCommands, "commands", false, "Render the difference as a delete/set command script")
	cmd.Flags().StringSliceVar(&diffPath, "path", nil, "Restrict the diff to a subtree (comma-separated path components)")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two configuration files",
		Long: `The diff command compares two configuration files. The default
output shows the added, removed, and shared parts as three subtrees; with
--commands it prints the minimal script that transforms left into right.

Example:
  vyconfctl diff before.boot after.boot
  vyconfctl diff before.boot after.boot --commands
  vyconfctl diff before.boot after.boot --path interfaces,ethernet`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1])
		},
	}
}

func runDiff(leftPath, rightPath string) error {
	left, err := loadTree(leftPath)
	if err != nil {
		return err
	}
	right, err := loadTree(rightPath)
	if err != nil {
		return err
	}

	if diffCommands {
		dt, err := configtree.NewDiffTree(diffPath, left, right)
		if err != nil {
			return err
		}
		printInfo("%s", dt.Commands())
		return nil
	}

	out, err := configtree.ShowDiff(diffPath, left, right, false)
	if err != nil {
		return err
	}
	printInfo("%s", out)
	return nil
}
