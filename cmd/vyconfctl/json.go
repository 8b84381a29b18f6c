package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newJSONCmd())
	rootCmd.AddCommand(newJSONAstCmd())
}

func newJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <file>",
		Short: "Convert a configuration file to JSON",
		Long: `The json command renders the configuration as a nested JSON
object. Tag and value-ordering information is not representable in this
form; use json-ast for a lossless rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}
			out, err := tree.ToJSON()
			if err != nil {
				return err
			}
			printInfo("%s\n", out)
			return nil
		},
	}
}

func newJSONAstCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json-ast <file>",
		Short: "Convert a configuration file to its JSON AST form",
		Long: `The json-ast command renders the raw node structure, keeping
tag flags and value lists intact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}
			out, err := tree.ToJSONAst()
			if err != nil {
				return err
			}
			printInfo("%s\n", out)
			return nil
		},
	}
}
