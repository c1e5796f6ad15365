package report

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/webstego/internal/ui/pretty"
	"github.com/yaklabco/webstego/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Warning.Render("No files to check."))
		}
		return 0, nil
	}

	files := make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		file.Path = displayPath(file.Path, r.opts.WorkingDir)
		files[i] = file
	}

	if r.opts.Mode == runner.ModeCapacity {
		fmt.Fprint(r.bw, r.styles.FormatCapacityTable(files))
	} else {
		r.reportMessages(files)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(r.opts.Mode, result.Stats))
	}

	return count(result, r.opts.Mode), nil
}

func (r *TextReporter) reportMessages(files []runner.FileOutcome) {
	for _, file := range files {
		path := r.styles.FilePath.Render(file.Path)

		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		case !file.Found:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Dim.Render("no message"))
		default:
			fmt.Fprintf(r.bw, "%s: %s", path, r.styles.Message.Render(fmt.Sprintf("%q", file.Message)))
			if r.opts.Verbose {
				t := file.Traversal
				fmt.Fprint(r.bw, r.styles.Dim.Render(
					fmt.Sprintf(" (%d bits from %d sites in %d nodes)", t.Bits, t.Sites, t.Nodes)))
			}
			fmt.Fprintln(r.bw)
		}
	}
}
