package runner

import (
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/stego"
)

// MethodCapacity is the number of bits one method can hide in a document
// on its own.
type MethodCapacity struct {
	Method string `json:"method"`
	Bits   int    `json:"bits"`
}

// FileOutcome is what a run learned about one document.
type FileOutcome struct {
	Path    string
	Grammar grammar.Grammar

	// Found is set when a complete message was extracted.
	Found   bool
	Message string

	// Traversal counts what the extraction walk touched.
	Traversal stego.Stats

	// Capacity lists each method on its own, in the order given.
	Capacity []MethodCapacity

	// Total is the capacity of all methods used together.
	Total int

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// MessagesFound counts documents a message was extracted from.
	MessagesFound int

	// TotalBits sums the combined capacity of every document.
	TotalBits int
}

// Result is the overall runner result.
type Result struct {
	// Files is ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any document failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.TotalBits += outcome.Total
	if outcome.Found {
		r.Stats.MessagesFound++
	}
}
