package pretty

import (
	"strings"

	"github.com/yaklabco/webstego/pkg/diff"
)

// FormatDiff renders d with one style per line kind. With visible set,
// spaces and tabs are drawn so whitespace changes show.
func (s *Styles) FormatDiff(d *diff.Diff, visible bool) string {
	if !d.HasChanges() {
		return ""
	}

	text := d.String()
	if visible {
		text = d.Visible()
	}

	var builder strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
			builder.WriteString(s.DiffHeader.Render(body))
		case strings.HasPrefix(body, "@@"):
			builder.WriteString(s.DiffHunk.Render(body))
		case strings.HasPrefix(body, "+"):
			builder.WriteString(s.DiffAdd.Render(body))
		case strings.HasPrefix(body, "-"):
			builder.WriteString(s.DiffRemove.Render(body))
		default:
			builder.WriteString(s.DiffContext.Render(body))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
