package markup

import (
	"regexp"
	"strings"
)

// Block and inline delimiter tags. Case-sensitive literals; must stay
// bit-exact for compatibility with existing authored manual content.
const (
	tagTableOpen           = "{{TABLE}}"
	tagTableClose          = "{{/TABLE}}"
	tagCalloutOpen         = "{{CALLOUT}}"
	tagCalloutClose        = "{{/CALLOUT}}"
	tagViolationNotesOpen  = "{{VIOLATION_NOTES}}"
	tagViolationNotesClose = "{{/VIOLATION_NOTES}}"
	tagImagePrefix         = "{{IMAGE:"
	tagLinkPrefix          = "{{LINK:"
	tagLinkClose           = "{{/LINK}}"
	tagEnd                 = "}}"
)

// DefaultLinkDomain resolves relative hyperlink URLs authored in rule text.
const DefaultLinkDomain = "https://content.rulehub.dev"

// markerTokenPattern matches any {{...}} token for marker stripping.
var markerTokenPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Strip removes every markup token from s, leaving plain text. Used for
// table cells and for search matching against rule body text.
func Strip(s string) string {
	return markerTokenPattern.ReplaceAllString(s, "")
}

// RuleResolver maps a cross-reference code token (brackets included, e.g.
// "<R3d>") to the identifier of the rule it names in the active manual.
type RuleResolver interface {
	ResolveRuleCode(code string) (ruleID string, ok bool)
}

// ResolverFunc adapts a plain function to the RuleResolver interface.
type ResolverFunc func(code string) (string, bool)

func (f ResolverFunc) ResolveRuleCode(code string) (string, bool) { return f(code) }

// Parser parses rule text authored in the markup mini-language. The zero
// value parses without cross-reference resolution and with the default
// link domain. Parsers are stateless between calls and safe for
// concurrent use.
type Parser struct {
	resolver   RuleResolver
	linkDomain string
}

// NewParser creates a parser. resolver may be nil, in which case every
// cross-reference token renders as plain text. linkDomain resolves
// relative hyperlink URLs; empty selects DefaultLinkDomain.
func NewParser(resolver RuleResolver, linkDomain string) *Parser {
	if linkDomain == "" {
		linkDomain = DefaultLinkDomain
	}
	return &Parser{resolver: resolver, linkDomain: linkDomain}
}

// blockTag describes one recognizable block construct opener.
type blockTag struct {
	kind  SegmentKind
	open  string
	close string // empty for self-closing tags
}

var blockTags = []blockTag{
	{SegmentTable, tagTableOpen, tagTableClose},
	{SegmentCallout, tagCalloutOpen, tagCalloutClose},
	{SegmentViolationNotes, tagViolationNotesOpen, tagViolationNotesClose},
	{SegmentImage, tagImagePrefix, ""},
}

// Parse splits raw rule text into an ordered sequence of block segments
// and resolves the inline markup of every plain-text line. The scan is
// single-pass and leftmost-match-first: the first occurring construct of
// any kind wins, and text preceding it is emitted as a TextBlock. Block
// constructs do not nest; a block tag found inside another block's span is
// not reparsed as a block.
//
// highlightQuery, when non-empty, marks the first case-insensitive
// occurrence of the query within each plain run with the highlight style.
func (p *Parser) Parse(raw, highlightQuery string) []Segment {
	var segments []Segment
	var pending strings.Builder

	flush := func() {
		text := pending.String()
		pending.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		segments = append(segments, p.textBlock(text, highlightQuery))
	}

	pos := 0
	for pos < len(raw) {
		tag, at := nextBlockTag(raw, pos)
		if at < 0 {
			pending.WriteString(raw[pos:])
			break
		}
		pending.WriteString(raw[pos:at])

		if tag.kind == SegmentImage {
			urlStart := at + len(tagImagePrefix)
			rel := strings.Index(raw[urlStart:], tagEnd)
			if rel < 0 {
				// No closing braces: the tag text is literal.
				pending.WriteString(tagImagePrefix)
				pos = urlStart
				continue
			}
			flush()
			url := strings.TrimSpace(raw[urlStart : urlStart+rel])
			if url != "" {
				segments = append(segments, Image{URL: url})
			}
			pos = urlStart + rel + len(tagEnd)
			continue
		}

		bodyStart := at + len(tag.open)
		rel := strings.Index(raw[bodyStart:], tag.close)
		if rel < 0 {
			// Unterminated block: the opening delimiter is literal text.
			pending.WriteString(tag.open)
			pos = bodyStart
			continue
		}
		flush()
		body := raw[bodyStart : bodyStart+rel]
		switch tag.kind {
		case SegmentTable:
			if table, ok := buildTable(body); ok {
				segments = append(segments, table)
			}
		case SegmentCallout:
			segments = append(segments, Callout{Lines: p.blockLines(body, highlightQuery)})
		case SegmentViolationNotes:
			segments = append(segments, ViolationNotes{Lines: p.blockLines(body, highlightQuery)})
		}
		pos = bodyStart + rel + len(tag.close)
	}
	flush()

	return segments
}

// nextBlockTag finds the leftmost block construct opener at or after pos.
// Returns a negative index when no construct remains.
func nextBlockTag(raw string, pos int) (blockTag, int) {
	best := -1
	var bestTag blockTag
	for _, tag := range blockTags {
		idx := strings.Index(raw[pos:], tag.open)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			bestTag = tag
		}
	}
	if best < 0 {
		return blockTag{}, -1
	}
	return bestTag, pos + best
}

// textBlock parses a plain-text span into a TextBlock, one Line per
// source line.
func (p *Parser) textBlock(text, highlightQuery string) TextBlock {
	block := TextBlock{}
	for _, line := range strings.Split(strings.Trim(text, "\n"), "\n") {
		block.Lines = append(block.Lines, p.parseLine(line, highlightQuery))
	}
	return block
}

// blockLines parses the body of a callout or violation-notes block into
// rendered lines. Bodies get inline resolution only; they are never
// re-entered by the block tokenizer.
func (p *Parser) blockLines(body, highlightQuery string) []Line {
	var lines []Line
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, p.parseLine(strings.TrimSpace(line), highlightQuery))
	}
	return lines
}
