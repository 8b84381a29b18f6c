package main

import (
	"github.com/spf13/cobra"

	"github.com/psaab/vyconf/pkg/configtree"
)

func init() {
	rootCmd.AddCommand(newUnionCmd())
}

func newUnionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "union <left> <right>",
		Short: "Merge two configuration files",
		Long: `The union command merges two configuration files. Nodes present
on either side appear in the result; values on shared leaves concatenate
left-first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := loadTree(args[0])
			if err != nil {
				return err
			}
			right, err := loadTree(args[1])
			if err != nil {
				return err
			}
			printInfo("%s", configtree.Union(left, right).ToText(true))
			return nil
		},
	}
}
