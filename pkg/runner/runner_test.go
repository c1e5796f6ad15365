package runner_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/method"
	_ "github.com/yaklabco/webstego/pkg/method/builtin" // Register built-in methods
	"github.com/yaklabco/webstego/pkg/parser"
	"github.com/yaklabco/webstego/pkg/runner"
	"github.com/yaklabco/webstego/pkg/stego"
)

var cmpSorted = cmpopts.SortSlices(func(a, b string) bool { return a < b })

// stylesheet returns n rule blocks of four declarations each.
func stylesheet(n int) []string {
	var lines []string
	for i := range n {
		lines = append(lines,
			fmt.Sprintf(".c%d {", i),
			"  color: red;",
			"  margin: 0 auto;",
			"  padding: 1px;",
			"  display: block;",
			"}",
		)
	}
	return lines
}

func trailing(t *testing.T) []method.Method {
	t.Helper()
	ms, err := method.DefaultRegistry.Resolve([]string{"trailing-space"})
	require.NoError(t, err)
	return ms
}

// writeStego hides message in a fresh stylesheet and writes it to path.
func writeStego(t *testing.T, path, message string) {
	t.Helper()
	root, err := parser.Parse(stylesheet(20), grammar.CSS)
	require.NoError(t, err)
	_, err = stego.Hide(root, message, trailing(t)...)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(root.Lines(), "\n")+"\n"), 0644))
}

func TestRun_Extract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 6 {
		writeStego(t, filepath.Join(dir, fmt.Sprintf("s%d.css", i)), fmt.Sprintf("msg %d", i))
	}
	writeFiles(t, dir, map[string]string{
		"plain.css":  strings.Join(stylesheet(2), "\n"),
		"broken.css": "a {\n  color: red;\n",
	})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       3,
		Methods:    trailing(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Stats.FilesDiscovered)
	assert.Equal(t, 7, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 6, result.Stats.MessagesFound)
	assert.True(t, result.HasErrors())

	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = f.Path
	}
	assert.True(t, slices.IsSorted(paths), "outcomes must be in path order")

	for _, f := range result.Files {
		name := filepath.Base(f.Path)
		switch {
		case name == "broken.css":
			require.ErrorIs(t, f.Error, parser.ErrMalformedDocument)
		case name == "plain.css":
			require.NoError(t, f.Error)
			assert.False(t, f.Found)
		default:
			require.NoError(t, f.Error)
			assert.True(t, f.Found, name)
			assert.Equal(t, "msg "+strings.TrimSuffix(strings.TrimPrefix(name, "s"), ".css"), f.Message)
			assert.Equal(t, grammar.CSS, f.Grammar)
			assert.Positive(t, f.Traversal.Sites)
		}
	}
}

func TestRun_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 10 {
		writeStego(t, filepath.Join(dir, fmt.Sprintf("f%02d.css", i)), strings.Repeat("x", i))
	}

	run := func(jobs int) *runner.Result {
		result, err := runner.Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Methods:    trailing(t),
		})
		require.NoError(t, err)
		return result
	}

	serial, parallel := run(1), run(8)
	if diff := cmp.Diff(serial, parallel, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("serial and parallel runs differ (-serial +parallel):\n%s", diff)
	}
}

func TestRun_Capacity(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": strings.Join(stylesheet(3), "\n")})

	ms, err := method.DefaultRegistry.Resolve([]string{"trailing-space", "colon-spacing", "double-space"})
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeCapacity,
		Methods:    ms,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	f := result.Files[0]
	require.NoError(t, f.Error)
	want := []runner.MethodCapacity{
		{Method: "trailing-space", Bits: 18},
		{Method: "colon-spacing", Bits: 12},
		{Method: "double-space", Bits: 18},
	}
	assert.Equal(t, want, f.Capacity)
	assert.Zero(t, f.Total, "double-space cannot be combined")
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Methods:    trailing(t),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasErrors())
}

func TestRun_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": "a {\n}\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir, Methods: trailing(t)})
	require.True(t, errors.Is(err, context.Canceled))
}

func TestProcess_MissingFile(t *testing.T) {
	t.Parallel()

	outcome := runner.Process(context.Background(), filepath.Join(t.TempDir(), "nope.css"),
		runner.Options{Methods: trailing(t)})
	assert.Error(t, outcome.Error)
}
