package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psaab/vyconf/pkg/configtree"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "vyconfctl",
	Short: "Inspect and transform hierarchical configuration files",
	Long: `vyconfctl is a tool for working with configuration files in the
curly-brace hierarchical format: re-indenting, converting to JSON or flat
command form, diffing, merging, and syntax checking.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printInfo prints to stdout unless in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// loadTree reads and parses a configuration file.
func loadTree(path string) (*configtree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := configtree.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}
