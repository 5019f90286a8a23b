package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verusyn/internal/prof"
)

func addProfileFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// setupProfiling starts the profilers named by the profile flags. The
// returned cleanup stops them and reports failures on stderr.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"cpu-profile", &cfg.CPU},
		{"mem-profile", &cfg.Mem},
		{"runtime-trace", &cfg.Trace},
	} {
		v, err := flags.GetString(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	errOut := cmd.ErrOrStderr()
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(errOut, "profiling: %v\n", err)
		}
	}, nil
}
