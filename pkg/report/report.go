// Package report renders run results for people and for machines.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/webstego/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of messages found (extract mode) or files
	// measured (capacity mode) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes path relative to workDir when it lies inside it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func count(result *runner.Result, mode runner.Mode) int {
	if result == nil {
		return 0
	}
	if mode == runner.ModeCapacity {
		return result.Stats.FilesProcessed
	}
	return result.Stats.MessagesFound
}
