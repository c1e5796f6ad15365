// Package grammar decides whether a document is HTML or CSS.
// It uses go-enry to recognize files by name and, failing that, by
// content.
package grammar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Grammar names one of the document grammars the parser understands.
type Grammar string

// Supported grammars. Auto asks Detect to decide.
const (
	Auto Grammar = "auto"
	HTML Grammar = "html"
	CSS  Grammar = "css"
)

// ErrUnknownGrammar is returned when a grammar name is not recognized or
// a document's grammar cannot be detected.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Names returns the grammar names accepted by Parse.
func Names() []string {
	return []string{string(Auto), string(HTML), string(CSS)}
}

// Parse converts a case-insensitive grammar name to a Grammar.
func Parse(name string) (Grammar, error) {
	switch g := Grammar(strings.ToLower(strings.TrimSpace(name))); g {
	case Auto, HTML, CSS:
		return g, nil
	case "":
		return Auto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGrammar, name)
	}
}

// Resolve returns g unless it is Auto, in which case the grammar is
// detected from path and content.
func Resolve(g Grammar, path string, content []byte) (Grammar, error) {
	if g != Auto && g != "" {
		return g, nil
	}
	return Detect(path, content)
}

// Detect returns the grammar of a document.
func Detect(path string, content []byte) (Grammar, error) {
	// Strategy 1: the file name.
	// Several languages may share an extension (.html is also Ecmarkup),
	// so any match among the candidates is taken.
	if path != "" {
		for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
			if g, ok := fromLanguage(lang); ok {
				return g, nil
			}
		}
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrUnknownGrammar, displayName(path))
	}

	// Strategy 2: markers that settle the question.
	if g := detectByPattern(trimmed); g != "" {
		return g, nil
	}

	// Strategy 3: the classifier, restricted to the two grammars.
	if lang, _ := enry.GetLanguageByClassifier(content, []string{"HTML", "CSS"}); lang != "" {
		if g, ok := fromLanguage(lang); ok {
			return g, nil
		}
	}

	return "", fmt.Errorf("%w: cannot detect grammar of %s", ErrUnknownGrammar, displayName(path))
}

// detectByPattern checks for grammar-specific markers.
func detectByPattern(trimmed []byte) Grammar {
	lower := bytes.ToLower(trimmed)
	if bytes.HasPrefix(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body")) {
		return HTML
	}
	if lower[0] != '<' && bytes.Contains(lower, []byte("{")) &&
		bytes.Contains(lower, []byte("}")) && bytes.Contains(lower, []byte(":")) {
		return CSS
	}
	return ""
}

func fromLanguage(lang string) (Grammar, bool) {
	switch lang {
	case "HTML":
		return HTML, true
	case "CSS":
		return CSS, true
	default:
		return "", false
	}
}

func displayName(path string) string {
	if path == "" {
		return "input"
	}
	return path
}
