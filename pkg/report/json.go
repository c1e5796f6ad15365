package report

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/webstego/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Mode    string           `json:"mode"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path    string `json:"path"`
	Grammar string `json:"grammar,omitempty"`

	Found   *bool   `json:"found,omitempty"`
	Message *string `json:"message,omitempty"`
	Bits    int     `json:"bits,omitempty"`

	Capacity []runner.MethodCapacity `json:"capacity,omitempty"`
	Total    *int                    `json:"total,omitempty"`

	Error string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked  int `json:"filesChecked"`
	FilesErrored  int `json:"filesErrored"`
	MessagesFound int `json:"messagesFound"`
	TotalBits     int `json:"totalBits"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return count(result, r.opts.Mode), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Mode:    r.opts.Mode.String(),
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    displayPath(file.Path, r.opts.WorkingDir),
			Grammar: string(file.Grammar),
		}

		switch {
		case file.Error != nil:
			fileResult.Error = file.Error.Error()
		case r.opts.Mode == runner.ModeCapacity:
			fileResult.Capacity = file.Capacity
			total := file.Total
			fileResult.Total = &total
		default:
			found := file.Found
			fileResult.Found = &found
			if found {
				message := file.Message
				fileResult.Message = &message
				fileResult.Bits = file.Traversal.Bits
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesChecked:  result.Stats.FilesProcessed,
		FilesErrored:  result.Stats.FilesErrored,
		MessagesFound: result.Stats.MessagesFound,
		TotalBits:     result.Stats.TotalBits,
	}

	return output
}
