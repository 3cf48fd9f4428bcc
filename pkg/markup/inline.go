package markup

import (
	"regexp"
	"strings"
)

// crossRefPattern matches an inline rule cross-reference token: uppercase
// letters, digits, and an optional single lowercase sub-part suffix inside
// angle brackets, e.g. "<SC1>" or "<R3d>".
var crossRefPattern = regexp.MustCompile(`<[A-Z]+[0-9]+[a-z]?>`)

// linkSpan records the character range of one hyperlink construct within
// a line, plus its decoded URL and visible text.
type linkSpan struct {
	start int
	end   int
	url   string
	label string
}

// findLinks locates every well-formed {{LINK:url}}text{{/LINK}} span in
// the line, left to right. Malformed link constructs are skipped and left
// in place as literal text.
func findLinks(line string) []linkSpan {
	var spans []linkSpan
	pos := 0
	for pos < len(line) {
		rel := strings.Index(line[pos:], tagLinkPrefix)
		if rel < 0 {
			break
		}
		start := pos + rel
		urlStart := start + len(tagLinkPrefix)
		urlRel := strings.Index(line[urlStart:], tagEnd)
		if urlRel < 0 {
			break
		}
		labelStart := urlStart + urlRel + len(tagEnd)
		labelRel := strings.Index(line[labelStart:], tagLinkClose)
		if labelRel < 0 {
			pos = urlStart
			continue
		}
		spans = append(spans, linkSpan{
			start: start,
			end:   labelStart + labelRel + len(tagLinkClose),
			url:   strings.TrimSpace(line[urlStart : urlStart+urlRel]),
			label: line[labelStart : labelStart+labelRel],
		})
		pos = labelStart + labelRel + len(tagLinkClose)
	}
	return spans
}

// parseLine resolves one line of plain text into styled runs. Hyperlink
// spans are located first; the scan then walks left to right with an
// explicit cursor, handling whichever event (link start or format
// marker) occurs first. Openers push onto the format stack; closers pop
// only when the stack is non-empty.
func (p *Parser) parseLine(line, highlightQuery string) Line {
	runs := Line{}
	var stack []Marker
	links := findLinks(line)
	li := 0
	pos := 0

	for pos < len(line) {
		for li < len(links) && links[li].start < pos {
			li++
		}
		linkAt := -1
		if li < len(links) {
			linkAt = links[li].start
		}
		markAt, marker, closing, markLen := nextFormatMarker(line, pos)

		switch {
		case linkAt >= 0 && (markAt < 0 || linkAt <= markAt):
			runs = p.emitText(runs, line[pos:linkAt], stack, highlightQuery)
			span := links[li]
			style := styleOf(stack)
			style.Color = ColorLink
			runs = append(runs, StyledRun{
				Text:   span.label,
				Style:  style,
				Action: &Action{Kind: ActionOpenLink, URL: p.resolveURL(span.url)},
			})
			pos = span.end
			li++
		case markAt >= 0:
			runs = p.emitText(runs, line[pos:markAt], stack, highlightQuery)
			if closing {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			} else {
				stack = append(stack, marker)
			}
			pos = markAt + markLen
		default:
			runs = p.emitText(runs, line[pos:], stack, highlightQuery)
			pos = len(line)
		}
	}
	return runs
}

// nextFormatMarker finds the leftmost inline format marker at or after
// pos. Tokens that look like markers but name no known kind (including
// link and block tags) are passed over. Returns a negative index when no
// marker remains.
func nextFormatMarker(line string, pos int) (at int, marker Marker, closing bool, length int) {
	i := pos
	for i < len(line) {
		rel := strings.Index(line[i:], "{{")
		if rel < 0 {
			return -1, 0, false, 0
		}
		start := i + rel
		nameStart := start + 2
		if nameStart < len(line) && line[nameStart] == '/' {
			closing = true
			nameStart++
		} else {
			closing = false
		}
		endRel := strings.Index(line[nameStart:], tagEnd)
		if endRel < 0 {
			return -1, 0, false, 0
		}
		name := line[nameStart : nameStart+endRel]
		if m, ok := markerNames[name]; ok {
			return start, m, closing, nameStart + endRel + len(tagEnd) - start
		}
		i = start + 2
	}
	return -1, 0, false, 0
}

// emitText scans literal text between events for cross-reference tokens,
// excising each into its own clickable run, and emits the remaining text
// as plain runs styled by the current stack.
func (p *Parser) emitText(runs Line, text string, stack []Marker, highlightQuery string) Line {
	if text == "" {
		return runs
	}
	matches := crossRefPattern.FindAllStringIndex(text, -1)
	cursor := 0
	for _, m := range matches {
		runs = appendPlain(runs, text[cursor:m[0]], stack, highlightQuery)
		token := text[m[0]:m[1]]
		if id, ok := p.resolve(token); ok {
			style := styleOf(stack)
			style.Color = ColorLink
			runs = append(runs, StyledRun{
				Text:   token,
				Style:  style,
				Action: &Action{Kind: ActionGoToRule, RuleID: id},
			})
		} else {
			// Unresolved references render verbatim, non-interactive.
			runs = append(runs, StyledRun{Text: token, Style: styleOf(stack)})
		}
		cursor = m[1]
	}
	return appendPlain(runs, text[cursor:], stack, highlightQuery)
}

// appendPlain emits literal text as a run, splitting out the first
// case-insensitive occurrence of the highlight query into its own
// highlighted sub-run. Only the first occurrence per run is highlighted.
func appendPlain(runs Line, text string, stack []Marker, highlightQuery string) Line {
	if text == "" {
		return runs
	}
	base := styleOf(stack)
	if highlightQuery != "" {
		idx := strings.Index(strings.ToLower(text), strings.ToLower(highlightQuery))
		if idx >= 0 {
			end := idx + len(highlightQuery)
			if idx > 0 {
				runs = append(runs, StyledRun{Text: text[:idx], Style: base})
			}
			match := base
			match.Highlight = true
			runs = append(runs, StyledRun{Text: text[idx:end], Style: match})
			if end < len(text) {
				runs = append(runs, StyledRun{Text: text[end:], Style: base})
			}
			return runs
		}
	}
	return append(runs, StyledRun{Text: text, Style: base})
}

// resolve maps a cross-reference token through the configured resolver.
func (p *Parser) resolve(code string) (string, bool) {
	if p.resolver == nil {
		return "", false
	}
	return p.resolver.ResolveRuleCode(code)
}

// resolveURL resolves relative hyperlink URLs against the configured
// external domain prefix.
func (p *Parser) resolveURL(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}
	domain := p.linkDomain
	if domain == "" {
		domain = DefaultLinkDomain
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return strings.TrimSuffix(domain, "/") + url
}
