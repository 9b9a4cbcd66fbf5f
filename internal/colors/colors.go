// Package colors provides centralized color output with TTY-aware defaults.
//
// Colors are automatically disabled when stdout is not a terminal (piped or
// redirected to a file). This behavior is provided by the underlying fatih/color
// library and respected by default. Use Init() to override based on CLI flags.
package colors

import (
	"strings"

	"github.com/fatih/color"
)

// Init allows overriding the auto-detected color setting.
//   - forceColor == nil: keep auto-detected value (recommended default)
//   - forceColor == true: force colors on (e.g., --color flag)
//   - forceColor == false: force colors off
func Init(forceColor *bool) {
	if forceColor != nil {
		color.NoColor = !*forceColor
	}
}

// Enabled returns true if colors are currently enabled.
func Enabled() bool {
	return !color.NoColor
}

func Bold() *color.Color       { return color.New(color.Bold) }
func Faint() *color.Color      { return color.New(color.Faint) }
func BoldYellow() *color.Color { return color.New(color.Bold, color.FgYellow) }

// Dump colorizes a rendered Mach-O dump line by line: record openers in bold,
// warnings in yellow and notes faint. With colors disabled it returns s unchanged.
func Dump(s string) string {
	if !Enabled() {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "warning:"):
			lines[i] = BoldYellow().Sprint(strings.TrimSuffix(line, "\n")) + suffix(line)
		case strings.HasPrefix(trimmed, "note:"):
			lines[i] = Faint().Sprint(strings.TrimSuffix(line, "\n")) + suffix(line)
		case strings.HasSuffix(trimmed, "{"):
			lines[i] = Bold().Sprint(strings.TrimSuffix(line, "\n")) + suffix(line)
		}
	}
	return strings.Join(lines, "")
}

func suffix(line string) string {
	if strings.HasSuffix(line, "\n") {
		return "\n"
	}
	return ""
}
