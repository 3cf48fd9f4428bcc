package markup

// Marker is an inline format marker kind. Composite markers are single
// atomic stack entries; their constituent effects come from applyTo, so a
// composite opener can be closed by its own verbatim closer without a
// compound-closer pairing scheme.
type Marker int

const (
	MarkerBold Marker = iota
	MarkerItalic
	MarkerRed
	MarkerSmall
	MarkerRedItalic
	MarkerRedBold
	MarkerItalicBold
	MarkerRedItalicBold
)

// markerNames maps authored tag names to marker kinds. Tag names are
// case-sensitive literals.
var markerNames = map[string]Marker{
	"BOLD":            MarkerBold,
	"ITALIC":          MarkerItalic,
	"RED":             MarkerRed,
	"SMALL":           MarkerSmall,
	"RED_ITALIC":      MarkerRedItalic,
	"RED_BOLD":        MarkerRedBold,
	"ITALIC_BOLD":     MarkerItalicBold,
	"RED_ITALIC_BOLD": MarkerRedItalicBold,
}

// applyTo adds the marker's style effects to s.
func (m Marker) applyTo(s *Style) {
	switch m {
	case MarkerBold:
		s.Bold = true
	case MarkerItalic:
		s.Italic = true
	case MarkerRed:
		s.Color = ColorRed
	case MarkerSmall:
		s.Small = true
	case MarkerRedItalic:
		s.Color = ColorRed
		s.Italic = true
	case MarkerRedBold:
		s.Color = ColorRed
		s.Bold = true
	case MarkerItalicBold:
		s.Italic = true
		s.Bold = true
	case MarkerRedItalicBold:
		s.Color = ColorRed
		s.Italic = true
		s.Bold = true
	}
}

// styleOf derives the concrete style for the current format stack by
// accumulating every open marker's effects, bottom to top.
func styleOf(stack []Marker) Style {
	var s Style
	for _, m := range stack {
		m.applyTo(&s)
	}
	return s
}
