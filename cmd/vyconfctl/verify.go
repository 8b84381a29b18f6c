package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psaab/vyconf/pkg/configtree"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Check a configuration file for syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0])
		},
	}
}

func runVerify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	_, err = configtree.Parse(string(data))
	if err != nil {
		var serr *configtree.SyntaxError
		if errors.As(err, &serr) {
			return fmt.Errorf("%s:%d:%d: %s", path, serr.Line, serr.Column, serr.Msg)
		}
		return err
	}

	printInfo("%s: OK\n", path)
	return nil
}
