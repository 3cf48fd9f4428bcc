package markup

import (
	"regexp"
	"strings"
)

// separatorLinePattern matches divider lines made solely of dashes,
// pipes, plus signs, and spaces, e.g. "---|---|---" or "+---+---+".
var separatorLinePattern = regexp.MustCompile(`^[-+| ]+$`)

// buildTable parses a table block's raw text. Blank and separator lines
// are discarded; the first qualifying line is the header and the rest are
// data rows. Cell text is trimmed and stripped of inline markup; markup
// is not rendered inside table cells. Returns false when the block yields
// no header or no data rows, in which case the segment is dropped.
func buildTable(body string) (Table, bool) {
	var rows [][]string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || separatorLinePattern.MatchString(trimmed) {
			continue
		}
		cells := splitCells(trimmed)
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, cells)
	}
	if len(rows) < 2 {
		return Table{}, false
	}
	return Table{Header: rows[0], Rows: rows[1:]}, true
}

// splitCells splits a table line on the pipe character, discarding the
// empty edge cells produced by leading or trailing pipes. Interior empty
// cells are kept.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(Strip(part)))
	}
	return cells
}
