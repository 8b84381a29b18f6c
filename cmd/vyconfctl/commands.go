package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsOp string

func init() {
	cmd := newCommandsCmd()
	cmd.Flags().StringVar(&commandsOp, "op", "set", "Operation prefix (set, delete)")
	rootCmd.AddCommand(cmd)
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands <file>",
		Short: "Convert a configuration file to flat commands",
		Long: `The commands command renders every leaf of the configuration as
one flat command line.

Example:
  vyconfctl commands config.boot
  vyconfctl commands config.boot --op delete`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if commandsOp != "set" && commandsOp != "delete" {
				return fmt.Errorf("unknown operation %q", commandsOp)
			}
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}
			printInfo("%s", tree.ToCommands(commandsOp))
			return nil
		},
	}
}
