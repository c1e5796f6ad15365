package parser

import (
	"errors"
	"strings"

	"github.com/yaklabco/webstego/pkg/document"
)

// ParseHTML builds the tree of an HTML document. Every line becomes an
// opening tag, a closing tag or a plain text line. The lines from the
// body opening tag to the body closing tag, inclusive, are gathered into
// one HTMLBody block.
func ParseHTML(lines []string) (*document.Node, error) {
	root := document.NewBlock(document.NodeDocument, 0)
	bodyOpen, bodyClose := -1, -1

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if !strings.HasPrefix(trimmed, "<") {
			root.Append(document.NewLine(document.NodeText, i, raw))
			continue
		}
		if len(trimmed) < 2 {
			return nil, malformed(i, "tag line too short")
		}

		if trimmed[1] == '/' {
			name := closingTagName(trimmed)
			if name == "" {
				return nil, malformed(i, "closing tag has no name")
			}
			if name == "body" {
				if bodyOpen < 0 || bodyClose >= 0 {
					return nil, malformed(i, "</body> without a matching <body>")
				}
				bodyClose = i
			}
			root.Append(document.NewLine(document.NodeHTMLCloseTag, i, raw))
			continue
		}

		tag, err := document.ParseTag(trimmed)
		if err != nil {
			if errors.Is(err, document.ErrUnterminatedQuote) {
				return nil, malformed(i, "unterminated attribute quote")
			}
			return nil, malformed(i, "opening tag has no name")
		}
		if strings.EqualFold(tag.Name, "body") {
			if bodyOpen >= 0 {
				return nil, malformed(i, "second <body> tag")
			}
			bodyOpen = i
		}
		root.Append(document.NewLine(document.NodeHTMLOpenTag, i, raw))
	}

	if bodyOpen >= 0 {
		if bodyClose < 0 {
			return nil, malformed(bodyOpen, "<body> is never closed")
		}
		body := document.NewBlock(document.NodeHTMLBody, bodyOpen, root.Children[bodyOpen:bodyClose+1]...)
		root.Replace(bodyOpen, bodyClose+1, body)
	}

	return root, nil
}

// closingTagName returns the lower-cased name of a closing tag line.
func closingTagName(trimmed string) string {
	name := trimmed[2:]
	if end := strings.IndexAny(name, " \t>"); end >= 0 {
		name = name[:end]
	}
	return strings.ToLower(name)
}
