package output

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// DisableColors turns off ANSI styling for all subsequent output.
func DisableColors() {
	color.NoColor = true
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes to get the visible text.
func stripANSI(str string) string {
	return ansiRegex.ReplaceAllString(str, "")
}

// padRight pads a colored string to the given visible width.
func padRight(str string, width int) string {
	visibleLen := len([]rune(stripANSI(str)))
	if visibleLen < width {
		return str + strings.Repeat(" ", width-visibleLen)
	}
	return str
}

func matchMark(ok bool) string {
	if ok {
		return green("✓")
	}
	return red("✗")
}
