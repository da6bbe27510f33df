// Package render draws the suggestion dropdown as terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

const (
	Footer         = "↑↓ Navigate  ↵ Select  Esc Close"
	selectedMarker = "↵"
	otherCategory  = "Other"
)

// Options control the dropdown text.
type Options struct {
	Color          bool
	DescriptionMax int
}

// DefaultOptions renders with color and 40 character descriptions.
func DefaultOptions() Options {
	return Options{Color: true, DescriptionMax: 40}
}

var kindColors = map[suggest.Kind]lipgloss.AdaptiveColor{
	suggest.Element:       {Light: "#c2410c", Dark: "#fb923c"},
	suggest.Attribute:     {Light: "#1d4ed8", Dark: "#60a5fa"},
	suggest.StyleProperty: {Light: "#7e22ce", Dark: "#c084fc"},
	suggest.StyleValue:    {Light: "#4b5563", Dark: "#9ca3af"},
	suggest.Keyword:       {Light: "#a16207", Dark: "#facc15"},
	suggest.Callable:      {Light: "#15803d", Dark: "#4ade80"},
	suggest.Identifier:    {Light: "#0e7490", Dark: "#22d3ee"},
}

type styles struct {
	header   lipgloss.Style
	category lipgloss.Style
	text     lipgloss.Style
	desc     lipgloss.Style
	selected lipgloss.Style
	footer   lipgloss.Style
	color    bool
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, false}
	}
	muted := lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	return styles{
		header:   lipgloss.NewStyle().Foreground(muted).Bold(true),
		category: lipgloss.NewStyle().Foreground(muted).Italic(true),
		text:     lipgloss.NewStyle().Bold(true),
		desc:     lipgloss.NewStyle().Foreground(muted),
		selected: lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "#dbeafe", Dark: "#1e3a8a"}),
		footer:   lipgloss.NewStyle().Foreground(muted),
		color:    true,
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

func (s styles) badge(k suggest.Kind) string {
	label := "[" + k.Label() + "]"
	if !s.color {
		return label
	}
	return lipgloss.NewStyle().Foreground(kindColors[k]).Render(label)
}

// Header is the count line shown above the entries.
func Header(n int) string {
	if n == 1 {
		return "1 suggestion available"
	}
	return fmt.Sprintf("%d suggestions available", n)
}

// group is one category section, holding positions into the list.
type group struct {
	name    string
	members []int
}

// groupByCategory keeps categories in order of first appearance.
func groupByCategory(list []suggest.Entry) []group {
	var groups []group
	index := make(map[string]int)
	for i, e := range list {
		name := e.Category
		if name == "" {
			name = otherCategory
		}
		g, ok := index[name]
		if !ok {
			g = len(groups)
			index[name] = g
			groups = append(groups, group{name: name})
		}
		groups[g].members = append(groups[g].members, i)
	}
	return groups
}

// Dropdown renders list with the entry at selected highlighted. Category
// headers appear only when the list spans more than one category. An empty
// list renders as the empty string.
func Dropdown(list []suggest.Entry, selected int, opts Options) string {
	if len(list) == 0 {
		return ""
	}
	st := newStyles(opts.Color)

	width := 0
	for _, e := range list {
		width = max(width, len(e.Text))
	}

	var b strings.Builder
	b.WriteString(st.render(st.header, Header(len(list))))
	b.WriteByte('\n')

	groups := groupByCategory(list)
	for _, g := range groups {
		if len(groups) > 1 {
			b.WriteString(st.render(st.category, "── "+g.name+" ──"))
			b.WriteByte('\n')
		}
		for _, i := range g.members {
			b.WriteString(entryLine(st, list[i], width, i == selected, opts.DescriptionMax))
			b.WriteByte('\n')
		}
	}

	b.WriteString(st.render(st.footer, Footer))
	return b.String()
}

func entryLine(st styles, e suggest.Entry, width int, selected bool, descMax int) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	line := marker + st.render(st.text, fmt.Sprintf("%-*s", width, e.Text)) + " " + st.badge(e.Kind)
	if e.Description != "" {
		line += " " + st.render(st.desc, utils.Truncate(e.Description, descMax))
	}
	if selected {
		line += " " + selectedMarker
		return st.render(st.selected, line)
	}
	return line
}
