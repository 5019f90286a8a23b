package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"verusyn/internal/diag"
	"verusyn/internal/driver"
	"verusyn/internal/project"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] PATH",
		Short: "Parse every .rs file under a directory in parallel",
		Long: `Check partitions and parses each selected file under PATH and reports
all diagnostics. Files are selected by the [check] include/exclude globs of
verusyn.toml, defaulting to **/*.rs.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = manifest or GOMAXPROCS)")
	cmd.Flags().String("ui", "off", "progress display (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse results for unchanged files")
	cmd.Flags().String("cache-dir", "", "cache directory (default from verusyn.toml)")
	cmd.Flags().Bool("clear-cache", false, "drop cached results before checking")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	return cmd
}

type checkFlags struct {
	jobs     int
	ui       uiMode
	cache    bool
	cacheDir string
	clear    bool
	format   string
}

func readCheckFlags(cmd *cobra.Command, m project.Manifest) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	f.cache = m.Cache.Enabled
	if cmd.Flags().Changed("cache") {
		if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
			return f, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	f.cacheDir = m.Cache.Dir
	if cmd.Flags().Changed("cache-dir") {
		if f.cacheDir, err = cmd.Flags().GetString("cache-dir"); err != nil {
			return f, fmt.Errorf("failed to get cache-dir flag: %w", err)
		}
	}
	if f.clear, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	return f, checkFormat(f.format, "pretty", "json", "short")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := args[0]
	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory; use parse for single files", root)
	}

	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	opts, m, err := loadOptions(cmd, root, g)
	if err != nil {
		return err
	}
	cf, err := readCheckFlags(cmd, m)
	if err != nil {
		return err
	}
	if cf.jobs > 0 {
		opts.Jobs = cf.jobs
	}
	if cf.cache {
		cache, err := driver.OpenDiskCache(cf.cacheDir)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		if cf.clear {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("cache: %w", err)
			}
		}
		opts.Cache = cache
	}

	var outcome checkOutcome
	if shouldUseTUI(cf.ui, cmd.OutOrStdout()) {
		outcome = runCheckWithUI(cmd, root, opts)
	} else {
		outcome.fs, outcome.results, outcome.err = driver.CheckDir(cmd.Context(), root, opts)
	}
	if outcome.err != nil {
		return fmt.Errorf("check: %w", outcome.err)
	}

	all := diag.NewBag(0)
	for _, r := range outcome.results {
		all.Merge(r.Bag)
	}
	if err := reportDiagnostics(cmd, all, outcome.fs, g, cf.format); err != nil {
		return err
	}

	blocks, items, failed := driver.Totals(outcome.results)
	if !g.quiet {
		cached := 0
		for _, r := range outcome.results {
			if r.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d blocks, %d items, %d failed, %d cached\n",
			len(outcome.results), blocks, items, failed, cached)
	}
	opts.Timer.Note("parse", fmt.Sprintf("%d blocks", blocks))
	printTimings(cmd, opts.Timer)
	if failed > 0 {
		return errFailed
	}
	return nil
}
