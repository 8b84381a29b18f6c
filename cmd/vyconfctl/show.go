package main

import (
	"github.com/spf13/cobra"
)

var showOrderedValues bool

func init() {
	cmd := newShowCmd()
	cmd.Flags().BoolVar(&showOrderedValues, "ordered-values", false, "Keep multi-value nodes in source order instead of sorting")
	rootCmd.AddCommand(cmd)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Re-render a configuration file in canonical form",
		Long: `The show command parses a configuration file and prints it back
with canonical indentation.

Example:
  vyconfctl show config.boot
  vyconfctl show config.boot --ordered-values`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0])
		},
	}
}

func runShow(path string) error {
	tree, err := loadTree(path)
	if err != nil {
		return err
	}
	printInfo("%s", tree.ToText(showOrderedValues))
	return nil
}
