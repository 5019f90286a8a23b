package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"verusyn/internal/driver"
	"verusyn/internal/source"
	"verusyn/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckWithUI runs the check in the background while a progress view
// consumes its events. CheckDir closes the event channel when done, which
// ends the view.
func runCheckWithUI(cmd *cobra.Command, root string, opts driver.Options) checkOutcome {
	events := make(chan driver.Event, 256)
	opts.Events = events
	done := make(chan checkOutcome, 1)
	go func() {
		var out checkOutcome
		out.fs, out.results, out.err = driver.CheckDir(cmd.Context(), root, opts)
		done <- out
	}()

	model := ui.NewProgressModel("checking "+displayName(root), nil, events)
	program := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithInput(nil),
	)
	_, uiErr := program.Run()
	// The view may quit early; drain so the checker never blocks.
	go func() {
		for range events {
		}
	}()
	out := <-done
	if out.err == nil && uiErr != nil {
		out.err = uiErr
	}
	return out
}
