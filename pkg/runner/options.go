// Package runner runs extraction or capacity analysis over many
// documents at once.
package runner

import (
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/method"
)

// Mode selects what is done with each document.
type Mode int

const (
	// ModeExtract recovers the hidden message.
	ModeExtract Mode = iota

	// ModeCapacity counts the bits each method could hide.
	ModeCapacity
)

func (m Mode) String() string {
	if m == ModeCapacity {
		return "capacity"
	}
	return "extract"
}

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) picked up from directories. Defaults to DefaultExtensions().
	// Files named explicitly are always processed.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	Mode Mode

	// Methods are the methods to extract with or measure.
	Methods []method.Method

	// Grammar forces a grammar; grammar.Auto detects it per file.
	Grammar grammar.Grammar
}

// DefaultExtensions returns the extensions of HTML and CSS files.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".css"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
