package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/webstego/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 messages found in 3 files, 1 error".
func (s *Styles) FormatSummaryOneLine(mode runner.Mode, stats runner.Stats) string {
	var parts []string

	switch mode {
	case runner.ModeCapacity:
		parts = append(parts, fmt.Sprintf("%s of capacity in %s",
			plural(stats.TotalBits, "bit"), plural(stats.FilesProcessed, "file")))
	default:
		if stats.MessagesFound == 0 {
			parts = append(parts, s.Warning.Render("No messages found")+
				s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file"))))
		} else {
			parts = append(parts, s.Success.Render(plural(stats.MessagesFound, "message")+" found")+
				fmt.Sprintf(" in %s", plural(stats.FilesProcessed, "file")))
		}
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(plural(stats.FilesErrored, "error")))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(mode runner.Mode, stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	if mode == runner.ModeCapacity {
		builder.WriteString("  Total capacity:    " +
			s.SummaryValue.Render(plural(stats.TotalBits, "bit")) + "\n")
	} else {
		builder.WriteString("  Messages found:    " +
			s.SummaryValue.Render(strconv.Itoa(stats.MessagesFound)) + "\n")
	}

	return builder.String()
}
