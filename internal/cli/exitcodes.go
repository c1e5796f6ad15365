package cli

import (
	"errors"
	"strings"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/fsutil"
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/parser"
	"github.com/yaklabco/webstego/pkg/stego"
	"github.com/yaklabco/webstego/pkg/verify"
)

// Exit codes for webstego.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the operation ran but did not succeed: no
	// message was found, the message did not fit, or verification failed.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitMalformedDocument indicates a document that could not be parsed.
	ExitMalformedDocument = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Errors that classify a command failure.
var (
	// ErrConfig wraps every configuration loading failure.
	ErrConfig = errors.New("invalid configuration")

	// ErrNoMessageFound is returned by extract when no document held a message.
	ErrNoMessageFound = errors.New("no hidden message found")
)

// UsageError is a problem with the command line itself.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// reportedError has already been shown to the user by a reporter; it
// only carries the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// IsReported reports whether err was already printed as part of a report.
func IsReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	switch {
	case errors.As(err, &usage), strings.HasPrefix(err.Error(), "unknown command"):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, parser.ErrMalformedDocument), errors.Is(err, grammar.ErrUnknownGrammar):
		return ExitMalformedDocument
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, errCoverModified):
		return ExitIOError
	case errors.Is(err, ErrNoMessageFound),
		errors.Is(err, stego.ErrNoMessage),
		errors.Is(err, stego.ErrInsufficientCapacity),
		errors.Is(err, bitstream.ErrUnencodable),
		errors.Is(err, verify.ErrNotEquivalent):
		return ExitFailure
	default:
		return ExitInternalError
	}
}
