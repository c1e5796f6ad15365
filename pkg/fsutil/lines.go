package fsutil

import (
	"bytes"
	"context"
	"os"
	"strings"
)

// Text is a document split into lines, remembering how it was delimited
// so it can be written back the same way.
type Text struct {
	// Lines holds the lines without their terminators.
	Lines []string

	// EOL is "\r\n" when the first line break of the file was CRLF and
	// "\n" otherwise.
	EOL string

	// FinalNewline is set when the last line was terminated.
	FinalNewline bool
}

// SplitLines splits content on LF, dropping a CR before each LF. A
// terminator after the last line does not start a new, empty line.
func SplitLines(content []byte) *Text {
	t := &Text{EOL: "\n"}
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		t.EOL = "\r\n"
	}
	if len(content) == 0 {
		return t
	}

	if content[len(content)-1] == '\n' {
		t.FinalNewline = true
		content = content[:len(content)-1]
	}

	for _, line := range strings.Split(string(content), "\n") {
		t.Lines = append(t.Lines, strings.TrimSuffix(line, "\r"))
	}
	return t
}

// Join renders lines with the delimiting of t.
func (t *Text) Join(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	s := strings.Join(lines, t.EOL)
	if t.FinalNewline {
		s += t.EOL
	}
	return []byte(s)
}

// Bytes renders t.Lines.
func (t *Text) Bytes() []byte {
	return t.Join(t.Lines)
}

// ReadLines reads the file at path as lines.
func ReadLines(ctx context.Context, path string) (*Text, *FileInfo, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return SplitLines(content), info, nil
}

// WriteLines atomically writes lines to path with the delimiting of t.
// mode 0 keeps the default file mode.
func WriteLines(ctx context.Context, path string, t *Text, lines []string, mode os.FileMode) error {
	return WriteAtomic(ctx, path, t.Join(lines), mode)
}
