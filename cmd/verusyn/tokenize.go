package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verusyn/internal/diagfmt"
	"verusyn/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] FILE",
		Short: "Print the tokens of a file or of one verus! block",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("block", -1, "lex only the N-th verus! block (0-based); -1 lexes the whole file")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(format, "pretty", "json"); err != nil {
		return err
	}
	block, err := cmd.Flags().GetInt("block")
	if err != nil {
		return fmt.Errorf("failed to get block flag: %w", err)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	opts, _, err := loadOptions(cmd, path, g)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), path, block, opts)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet, g, "pretty"); err != nil {
		return err
	}
	printTimings(cmd, opts.Timer)
	if result.Err != nil {
		return errFailed
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
