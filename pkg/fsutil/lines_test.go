package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/webstego/pkg/fsutil"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		lines        []string
		eol          string
		finalNewline bool
	}{
		{"empty", "", nil, "\n", false},
		{"single line no newline", "a {}", []string{"a {}"}, "\n", false},
		{"lf with final newline", "a\nb\n", []string{"a", "b"}, "\n", true},
		{"crlf", "a\r\n  b \r\n", []string{"a", "  b "}, "\r\n", true},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}, "\n", false},
		{"only newline", "\n", []string{""}, "\n", true},
		{"trailing spaces kept", "x  \ny\t\n", []string{"x  ", "y\t"}, "\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := fsutil.SplitLines([]byte(tt.content))

			if diff := cmp.Diff(tt.lines, text.Lines); diff != "" {
				t.Errorf("Lines mismatch (-want +got):\n%s", diff)
			}
			if text.EOL != tt.eol {
				t.Errorf("EOL = %q, want %q", text.EOL, tt.eol)
			}
			if text.FinalNewline != tt.finalNewline {
				t.Errorf("FinalNewline = %v, want %v", text.FinalNewline, tt.finalNewline)
			}
			if got := string(text.Bytes()); got != tt.content {
				t.Errorf("Bytes() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestReadWriteLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "cover.css")
	out := filepath.Join(dir, "stego.css")
	if err := os.WriteFile(in, []byte("a {\r\n  color: red;\r\n}\r\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	text, info, err := fsutil.ReadLines(context.Background(), in)
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}

	lines := append([]string(nil), text.Lines...)
	lines[1] += " "
	if err := fsutil.WriteLines(context.Background(), out, text, lines, info.Mode); err != nil {
		t.Fatalf("WriteLines() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "a {\r\n  color: red; \r\n}\r\n"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}
