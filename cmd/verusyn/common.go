package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"verusyn/internal/diag"
	"verusyn/internal/diagfmt"
	"verusyn/internal/driver"
	"verusyn/internal/observ"
	"verusyn/internal/project"
	"verusyn/internal/source"
)

type globalFlags struct {
	color          string
	quiet          bool
	timings        bool
	rules          bool
	maxDiagnostics int
}

func readGlobals(cmd *cobra.Command) (globalFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		g   globalFlags
		err error
	)
	if g.color, err = flags.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch g.color {
	case "auto", "on", "off":
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", g.color)
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.rules, err = flags.GetBool("rules"); err != nil {
		return g, fmt.Errorf("failed to get rules flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

func (g globalFlags) useColor(w io.Writer) bool {
	return g.color == "on" || (g.color == "auto" && isTerminal(w))
}

// loadOptions discovers the manifest for path and layers the command line
// over it. Only flags the user set override manifest values.
func loadOptions(cmd *cobra.Command, path string, g globalFlags) (driver.Options, project.Manifest, error) {
	m, _, err := project.Discover(path)
	if err != nil {
		return driver.Options{}, m, fmt.Errorf("manifest: %w", err)
	}
	opts := driver.FromManifest(m)

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("max-diagnostics") {
		opts.MaxDiagnostics = g.maxDiagnostics
	}
	if flags.Changed("max-depth") {
		if opts.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return opts, m, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if flags.Changed("no-memo") {
		if opts.NoMemo, err = flags.GetBool("no-memo"); err != nil {
			return opts, m, fmt.Errorf("failed to get no-memo flag: %w", err)
		}
	}
	if g.timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, m, nil
}

func (g globalFlags) prettyOpts(w io.Writer) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     g.useColor(w),
		Context:   2,
		ShowNotes: true,
		ShowRules: g.rules,
	}
}

// reportDiagnostics prints bag to the command's stderr in the given
// format: pretty, json or short.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, g globalFlags, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	w := cmd.ErrOrStderr()
	switch format {
	case "", "pretty":
		diagfmt.Pretty(w, bag, fs, g.prettyOpts(w))
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeRules:     g.rules,
			Max:              g.maxDiagnostics,
		})
	case "short":
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}

// checkFormat validates value against the allowed choices.
func checkFormat(value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (expected %s)", value, strings.Join(allowed, "|"))
}

func displayName(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
