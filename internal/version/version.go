// Package version holds build metadata for the verusyn CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// String renders "verusyn <version> (<commit>, <date>)". With colored set
// the major, minor and patch numbers are highlighted.
func String(colored bool) string {
	var b strings.Builder
	b.WriteString("verusyn ")
	b.WriteString(render(Version, colored))
	var extra []string
	if GitCommit != "" {
		extra = append(extra, shortCommit(GitCommit))
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) > 0 {
		b.WriteString(" (" + strings.Join(extra, ", ") + ")")
	}
	return b.String()
}

func render(v string, colored bool) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if !colored || len(parts) != 3 {
		return v
	}
	out := sprint(majorColor, parts[0]) + "." + sprint(minorColor, parts[1]) + "." + sprint(patchColor, parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

func sprint(c *color.Color, s string) string {
	c.EnableColor()
	return c.Sprint(s)
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
