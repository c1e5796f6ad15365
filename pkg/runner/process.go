package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/fsutil"
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/method"
	"github.com/yaklabco/webstego/pkg/parser"
	"github.com/yaklabco/webstego/pkg/stego"
)

// Process reads and parses one document and handles it according to
// opts.Mode. Problems with the document are reported in the outcome's
// Error; a document without a message is not an error.
func Process(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	text, _, err := fsutil.ReadLines(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	g, err := grammar.Resolve(opts.Grammar, path, []byte(strings.Join(text.Lines, "\n")))
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.Grammar = g

	root, err := parser.Parse(text.Lines, g)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	switch opts.Mode {
	case ModeCapacity:
		outcome.Error = measure(&outcome, opts.Methods, root)
	default:
		message, stats, err := stego.Reveal(root, opts.Methods...)
		outcome.Traversal = stats
		switch {
		case err == nil:
			outcome.Found = true
			outcome.Message = message
		case !errors.Is(err, stego.ErrNoMessage):
			outcome.Error = err
		}
	}
	return outcome
}

// measure fills in per-method and combined capacity. Methods that
// cannot run together still get their own figure; the combined figure
// then stays zero.
func measure(outcome *FileOutcome, methods []method.Method, root *document.Node) error {
	for _, m := range methods {
		bits, err := stego.Capacity(root, m)
		if err != nil {
			return err
		}
		outcome.Capacity = append(outcome.Capacity, MethodCapacity{Method: m.Info().Name, Bits: bits})
	}

	total, err := stego.Capacity(root, methods...)
	if err != nil && !errors.Is(err, method.ErrConflictingMethods) {
		return err
	}
	outcome.Total = total
	return nil
}
