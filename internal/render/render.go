// Package render prints match groups over their source text with one colour
// per rule.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/roach88/spanmerge/internal/logging"
	"github.com/roach88/spanmerge/match"
)

// ColorMode selects when escape sequences are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Rule colours, assigned in first-seen order and reused when exhausted.
var palette = []lipgloss.Color{"212", "39", "114", "214", "141", "203", "45", "229"}

// Markers used around groups when the output has no colour.
const (
	openMarker  = "["
	closeMarker = "]"
)

// Highlighter renders groups for one writer.
type Highlighter struct {
	r      *lipgloss.Renderer
	styles map[string]lipgloss.Style
	order  []string
}

// New returns a Highlighter for w.
func New(w io.Writer, mode ColorMode) *Highlighter {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
	default:
		if !logging.IsTerminal(w) {
			r.SetColorProfile(termenv.Ascii)
		}
	}

	logger := logging.GetLogger("render")
	logger.Debug().
		Str("mode", string(mode)).
		Str("profile", profileName(r.ColorProfile())).
		Msg("highlighter created")

	return &Highlighter{r: r, styles: map[string]lipgloss.Style{}}
}

// Colored reports whether the highlighter writes escape sequences.
func (h *Highlighter) Colored() bool {
	return h.r.ColorProfile() != termenv.Ascii
}

// Style returns the style of rule, assigning the next palette colour on first
// use.
func (h *Highlighter) Style(rule string) lipgloss.Style {
	if s, ok := h.styles[rule]; ok {
		return s
	}
	s := h.r.NewStyle().
		Foreground(palette[len(h.order)%len(palette)]).
		TabWidth(lipgloss.NoTabConversion)
	h.styles[rule] = s
	h.order = append(h.order, rule)
	return s
}

// Highlight returns text with every group span styled by its Left rule.
// Spans are clipped to the text and to the end of the previous span.
func (h *Highlighter) Highlight(text string, groups []match.MatchGroup) string {
	var b strings.Builder
	pos := 0
	for _, g := range groups {
		start := max(g.Start, pos)
		end := min(g.End+1, len(text))
		if start >= end {
			continue
		}
		b.WriteString(text[pos:start])
		b.WriteString(h.span(g.Left.Rule, text[start:end]))
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String()
}

// Legend lists rule names, each in its own style.
func (h *Highlighter) Legend(rules []string) string {
	parts := make([]string, 0, len(rules))
	for _, name := range rules {
		parts = append(parts, h.span(name, name))
	}
	return strings.Join(parts, " ")
}

func (h *Highlighter) span(rule, s string) string {
	if !h.Colored() {
		return openMarker + s + closeMarker
	}

	// Styles pad multi-line blocks to a common width, so each line is
	// rendered on its own.
	style := h.Style(rule)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
