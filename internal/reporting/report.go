package reporting

import (
	"fmt"
	"io"
	"mcenroe/internal/fleet"
	"mcenroe/internal/models"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Format selects how colours are encoded in the prompt line.
type Format string

const (
	FormatPlain Format = "plain" // no colour
	FormatANSI  Format = "ansi"  // raw escape sequences
	FormatZsh   Format = "zsh"   // %F{..} prompt escapes
	FormatBash  Format = "bash"  // escapes wrapped in \[ \]
)

// Formats lists the supported formats.
var Formats = []Format{FormatPlain, FormatANSI, FormatZsh, FormatBash}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

type colour int

const (
	yellow colour = 3
	blue   colour = 4
	green  colour = 2
	red    colour = 1
)

var zshNames = map[colour]string{
	yellow: "yellow",
	blue:   "blue",
	green:  "green",
	red:    "red",
}

type painter func(s string, c colour) string

func painterFor(f Format) painter {
	switch f {
	case FormatANSI:
		// Prompts capture our output through a pipe, so colour must not
		// depend on terminal detection.
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.ANSI)
		return func(s string, c colour) string {
			return r.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(int(c)))).Render(s)
		}
	case FormatZsh:
		return func(s string, c colour) string {
			return fmt.Sprintf("%%F{%s}%s%%f", zshNames[c], s)
		}
	case FormatBash:
		return func(s string, c colour) string {
			return fmt.Sprintf("\\[\\e[%dm\\]%s\\[\\e[0m\\]", 30+int(c), s)
		}
	default:
		return func(s string, _ colour) string { return s }
	}
}

// Render writes the prompt line for outcomes to w:
//
//	ping() -> [ router nas ]
//
// with reachable hosts in green and unreachable ones in red. Unless short
// is set, a "Ping <name> failed: <message>" line follows for each failure.
func Render(w io.Writer, outcomes []models.Outcome, format Format, short bool) error {
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}
	paint := painterFor(format)

	var b strings.Builder
	b.WriteString(paint("ping", yellow))
	b.WriteString("() -> ")
	b.WriteString(paint("[", blue))
	for _, o := range outcomes {
		c := green
		if !o.Success {
			c = red
		}
		b.WriteString(" ")
		b.WriteString(paint(o.Name, c))
	}
	b.WriteString(paint(" ]", blue))
	b.WriteString("\n")

	if !short {
		for _, o := range fleet.Failed(outcomes) {
			fmt.Fprintf(&b, "Ping %s failed: %s\n", o.Name, o.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
