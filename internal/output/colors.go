package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Method    *color.Color
	URL       *color.Color
	Key       *color.Color
	Success   *color.Color
	Error     *color.Color
	Highlight *color.Color
}

// NewColorScheme returns the default color scheme, with colors forced on or off.
func NewColorScheme(enabled bool) *ColorScheme {
	scheme := &ColorScheme{
		Method:    color.New(color.FgBlue, color.Bold),
		URL:       color.New(color.FgCyan),
		Key:       color.New(color.FgYellow),
		Success:   color.New(color.FgGreen, color.Bold),
		Error:     color.New(color.FgRed, color.Bold),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}

	for _, c := range []*color.Color{scheme.Method, scheme.URL, scheme.Key, scheme.Success, scheme.Error, scheme.Highlight} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return scheme
}

// ShouldColor reports whether output written to f should be colored.
func ShouldColor(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SuccessIcon returns a checkmark symbol with appropriate color
func (s *ColorScheme) SuccessIcon() string {
	return s.Success.Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func (s *ColorScheme) ErrorIcon() string {
	return s.Error.Sprint("✗")
}
