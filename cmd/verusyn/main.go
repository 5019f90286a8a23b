package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"verusyn/internal/version"
)

// errFailed marks a command that ran to completion but found errors in
// its input. Its diagnostics are already printed.
var errFailed = errors.New("errors reported")

func newRootCmd(cleanup *func()) *cobra.Command {
	root := &cobra.Command{
		Use:           "verusyn",
		Short:         "Verus syntax front-end",
		Long:          `verusyn splits Rust files into ordinary code and verus! blocks and parses the blocks`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				stopProf()
				return err
			}
			*cleanup = func() {
				stopTrace()
				stopProf()
			}
			return nil
		},
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newSplitCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.Int("max-depth", 0, "grammar nesting limit (0 = manifest or default)")
	flags.Bool("no-memo", false, "disable grammar memoisation")
	flags.Bool("rules", false, "print the grammar rule stack of each diagnostic")
	addTraceFlags(root)
	addProfileFlags(root)
	return root
}

// run executes one CLI invocation and returns the process exit code:
// 0 on success, 1 when the input has errors, 2 on usage or I/O failures.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cleanup := func() {}
	root := newRootCmd(&cleanup)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	cleanup()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
