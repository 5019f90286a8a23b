package main

import (
	"fmt"
	"io"
	"strings"
)

// uiMode selects the progress display of `check`.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	v := uiMode(strings.ToLower(strings.TrimSpace(value)))
	if v == "" {
		return uiModeAuto, nil
	}
	switch v {
	case uiModeAuto, uiModeOn, uiModeOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI resolves auto against the output stream.
func shouldUseTUI(mode uiMode, out io.Writer) bool {
	if mode == uiModeAuto {
		return isTerminal(out)
	}
	return mode == uiModeOn
}
