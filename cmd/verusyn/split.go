package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verusyn/internal/diagfmt"
	"verusyn/internal/driver"
)

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split FILE",
		Short: "Summarise how a file divides into ordinary code and verus! blocks",
		Args:  cobra.ExactArgs(1),
		RunE:  runSplit,
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	path := args[0]
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	opts, _, err := loadOptions(cmd, path, g)
	if err != nil {
		return err
	}
	result, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	if err := diagfmt.FormatSplit(cmd.OutOrStdout(), result.Source, result.FileSet); err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet, g, "pretty"); err != nil {
		return err
	}
	printTimings(cmd, opts.Timer)
	if !result.OK() {
		return errFailed
	}
	return nil
}
