package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verusyn/internal/diagfmt"
	"verusyn/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] FILE",
		Short: "Parse the verus! blocks of a file and print the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|yaml|msgpack)")
	cmd.Flags().Bool("tokens", false, "include token leaves")
	cmd.Flags().Bool("trivia", false, "include comments attached to tokens (implies --tokens)")
	cmd.Flags().Bool("positions", false, "include line:col positions")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(format, "tree", "json", "yaml", "msgpack"); err != nil {
		return err
	}
	var treeOpts diagfmt.TreeOpts
	if treeOpts.Tokens, err = cmd.Flags().GetBool("tokens"); err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	if treeOpts.Trivia, err = cmd.Flags().GetBool("trivia"); err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	if treeOpts.Positions, err = cmd.Flags().GetBool("positions"); err != nil {
		return fmt.Errorf("failed to get positions flag: %w", err)
	}
	treeOpts.Tokens = treeOpts.Tokens || treeOpts.Trivia

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
		return fmt.Errorf("parse: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet, g, "pretty"); err != nil {
		return err
	}
	printTimings(cmd, opts.Timer)
	if !result.OK() {
		return errFailed
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatTreeJSON(out, result.Source, result.FileSet, treeOpts)
	case "yaml":
		return diagfmt.FormatTreeYAML(out, result.Source, result.FileSet, treeOpts)
	case "msgpack":
		return diagfmt.FormatTreeMsgpack(out, result.Source, result.FileSet, treeOpts)
	default:
		return diagfmt.FormatTreePretty(out, result.Source, result.FileSet, treeOpts)
	}
}
