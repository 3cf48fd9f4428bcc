// Package markup turns the compact markup mini-language embedded in rule
// text into structured, styled, interactive content: paragraphs, tables,
// callout boxes, violation-note blocks, images, hyperlinks, and
// cross-references between rules.
//
// Parsing is pure and synchronous. Every malformed-input case degrades to
// a defined fallback rather than failing: unterminated block delimiters
// render as literal text, unmatched closing format markers are no-ops,
// tables without a header or data rows render as nothing, and unresolved
// cross-references render as plain non-interactive text.
package markup

// SegmentKind discriminates the block-level segment variants.
type SegmentKind string

const (
	SegmentText           SegmentKind = "text"
	SegmentTable          SegmentKind = "table"
	SegmentCallout        SegmentKind = "callout"
	SegmentViolationNotes SegmentKind = "violation_notes"
	SegmentImage          SegmentKind = "image"
)

// Segment is one block-level piece of parsed rule text.
type Segment interface {
	Kind() SegmentKind
}

// Line is the ordered sequence of styled runs covering one source line,
// with no gaps or overlaps.
type Line []StyledRun

// Text returns the line flattened back to plain text, styles stripped.
func (l Line) Text() string {
	var out string
	for _, run := range l {
		out += run.Text
	}
	return out
}

// TextBlock is a plain-text block: one Line per source line.
type TextBlock struct {
	Lines []Line
}

func (TextBlock) Kind() SegmentKind { return SegmentText }

// Table is a parsed table block: a header row plus zero or more data rows
// of stripped cell text. Rows may differ in cell count; renderers must
// tolerate ragged rows.
type Table struct {
	Header []string
	Rows   [][]string
}

func (Table) Kind() SegmentKind { return SegmentTable }

// Callout is an emphasized note box wrapping rendered lines.
type Callout struct {
	Lines []Line
}

func (Callout) Kind() SegmentKind { return SegmentCallout }

// ViolationNotes is the violation-guidance block of a rule, wrapping
// rendered lines.
type ViolationNotes struct {
	Lines []Line
}

func (ViolationNotes) Kind() SegmentKind { return SegmentViolationNotes }

// Image is a single-tag image reference.
type Image struct {
	URL string
}

func (Image) Kind() SegmentKind { return SegmentImage }

// ColorRole names the semantic color of a run. Concrete colors are the
// renderer's business.
type ColorRole string

const (
	ColorDefault ColorRole = ""
	ColorRed     ColorRole = "red"
	ColorLink    ColorRole = "link"
)

// Style is the resolved presentation of a run, derived fresh from
// format-stack state on every parse.
type Style struct {
	Color     ColorRole
	Bold      bool
	Italic    bool
	Small     bool
	Highlight bool
}

// ActionKind discriminates run actions.
type ActionKind string

const (
	// ActionOpenLink opens an external URL.
	ActionOpenLink ActionKind = "open_link"

	// ActionGoToRule navigates to a cross-referenced rule by ID.
	ActionGoToRule ActionKind = "go_to_rule"
)

// Action is the interaction attached to a run, if any.
type Action struct {
	Kind   ActionKind
	URL    string
	RuleID string
}

// StyledRun is a span of text with its resolved style and optional action.
type StyledRun struct {
	Text   string
	Style  Style
	Action *Action
}
