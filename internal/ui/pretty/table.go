package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/webstego/pkg/runner"
)

const (
	minFileWidth   = 20
	minColumnWidth = 6
	heavySeparator = "="
	combinedColumn = "ALL"
)

// FormatCapacityTable lays out the capacity of every file with one column
// per method and a last column for all methods together. Files that
// failed are listed with their error below the table.
func (s *Styles) FormatCapacityTable(files []runner.FileOutcome) string {
	var methods []string
	for _, f := range files {
		if f.Error == nil && len(f.Capacity) > 0 {
			for _, c := range f.Capacity {
				methods = append(methods, c.Method)
			}
			break
		}
	}
	if len(methods) == 0 {
		return ""
	}

	fileWidth := minFileWidth
	for _, f := range files {
		fileWidth = max(fileWidth, len(f.Path))
	}
	widths := make([]int, len(methods)+1)
	for i, m := range methods {
		widths[i] = max(minColumnWidth, len(m))
	}
	widths[len(methods)] = max(minColumnWidth, len(combinedColumn))

	header := fmt.Sprintf(" %-*s", fileWidth, "FILE")
	for i, m := range append(methods, combinedColumn) {
		header += fmt.Sprintf("  %*s", widths[i], strings.ToUpper(m))
	}
	total := len(header)

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(header) + "\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	var failed []runner.FileOutcome
	for _, f := range files {
		if f.Error != nil {
			failed = append(failed, f)
			continue
		}
		row := fmt.Sprintf(" %-*s", fileWidth, f.Path)
		for i, c := range f.Capacity {
			row += fmt.Sprintf("  %*d", widths[i], c.Bits)
		}
		combined := "-"
		if f.Total > 0 {
			combined = strconv.Itoa(f.Total)
		}
		row += fmt.Sprintf("  %*s", widths[len(methods)], combined)
		builder.WriteString(row + "\n")
	}

	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for _, f := range failed {
		builder.WriteString(fmt.Sprintf("%s: %s\n", s.FilePath.Render(f.Path), s.Error.Render(f.Error.Error())))
	}
	return builder.String()
}
