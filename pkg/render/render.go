// Package render turns parsed rule markup into styled terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coolbeans/rulehub/pkg/markup"
)

// Semantic color palette.
var (
	colorRed    = lipgloss.Color("#FF5252") // Red emphasis in rule text
	colorLink   = lipgloss.Color("#00BFFF") // Cyan, links and rule references
	colorAccent = lipgloss.Color("#FFD700") // Gold, callout borders
	colorMuted  = lipgloss.Color("#8C8C8C") // Gray, table borders and fine print
)

var (
	styleCalloutBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	styleViolationBox = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorRed).
				Padding(0, 1)

	styleTableHeader = lipgloss.NewStyle().Bold(true)

	styleTableBorder = lipgloss.NewStyle().Foreground(colorMuted)

	styleImage = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// Renderer renders markup segments for a terminal of the given width.
type Renderer struct {
	width int
}

// NewRenderer returns a Renderer wrapping output at width columns. Width
// zero disables wrapping.
func NewRenderer(width int) *Renderer {
	return &Renderer{width: width}
}

// Render renders a sequence of segments, separated by blank lines.
func (r *Renderer) Render(segments []markup.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, r.RenderSegment(seg))
	}
	return strings.Join(parts, "\n\n")
}

// RenderSegment renders one segment.
func (r *Renderer) RenderSegment(seg markup.Segment) string {
	switch s := seg.(type) {
	case markup.TextBlock:
		return r.renderLines(s.Lines)
	case markup.Callout:
		return r.box(styleCalloutBox).Render(r.renderLines(s.Lines))
	case markup.ViolationNotes:
		return r.box(styleViolationBox).Render(r.renderLines(s.Lines))
	case markup.Table:
		return r.renderTable(s)
	case markup.Image:
		return styleImage.Render("[image: " + s.URL + "]")
	default:
		return ""
	}
}

// box caps a bordered style at the renderer width. The two border
// columns come out of the content width.
func (r *Renderer) box(style lipgloss.Style) lipgloss.Style {
	if r.width > 2 {
		return style.MaxWidth(r.width).Width(r.width - 2)
	}
	return style
}

func (r *Renderer) renderLines(lines []markup.Line) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		for _, run := range line {
			b.WriteString(runStyle(run).Render(run.Text))
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// renderTable draws a grid with column widths sized to the widest cell.
// Ragged rows are padded with empty cells.
func (r *Renderer) renderTable(t markup.Table) string {
	if len(t.Header) == 0 {
		return ""
	}

	widths := make([]int, 0, len(t.Header))
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	sep := tableSeparator(widths)
	var b strings.Builder
	b.WriteString(sep)
	b.WriteString("\n")
	b.WriteString(r.renderRow(t.Header, widths, styleTableHeader))
	b.WriteString("\n")
	b.WriteString(sep)
	for _, row := range t.Rows {
		b.WriteString("\n")
		b.WriteString(r.renderRow(row, widths, lipgloss.NewStyle()))
	}
	b.WriteString("\n")
	b.WriteString(sep)
	return b.String()
}

func (r *Renderer) renderRow(row []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(styleTableBorder.Render("|"))
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := strings.Repeat(" ", width-lipgloss.Width(cell))
		b.WriteString(" " + style.Render(cell) + pad + " ")
		b.WriteString(styleTableBorder.Render("|"))
	}
	return b.String()
}

func tableSeparator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	return styleTableBorder.Render(b.String())
}

// runStyle maps a styled run onto a lipgloss style.
func runStyle(run markup.StyledRun) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch run.Style.Color {
	case markup.ColorRed:
		style = style.Foreground(colorRed)
	case markup.ColorLink:
		style = style.Foreground(colorLink).Underline(true)
	}
	if run.Style.Bold {
		style = style.Bold(true)
	}
	if run.Style.Italic {
		style = style.Italic(true)
	}
	if run.Style.Small {
		style = style.Faint(true)
	}
	if run.Style.Highlight {
		style = style.Reverse(true)
	}
	return style
}
