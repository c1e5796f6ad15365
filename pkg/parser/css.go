package parser

import (
	"strings"

	"github.com/yaklabco/webstego/pkg/document"
)

// groupingAtRules hold nested rules rather than declarations.
var groupingAtRules = map[string]bool{
	"@media":             true,
	"@supports":          true,
	"@document":          true,
	"@layer":             true,
	"@container":         true,
	"@scope":             true,
	"@keyframes":         true,
	"@-webkit-keyframes": true,
	"@-moz-keyframes":    true,
}

// ParseCSS builds the tree of a CSS document by recursive descent:
//
//	document  = { item }
//	item      = media | rule | at-line | plain
//	media     = grouping-at-rule "{" { item } "}"
//	rule      = { selector "," } selector "{" { property | plain } "}"
//
// An at-rule that holds declarations (@font-face, @page) is parsed as a
// rule whose first line is the at-rule header.
func ParseCSS(lines []string) (*document.Node, error) {
	p := &cssParser{lines: lines}
	root := document.NewBlock(document.NodeDocument, 0)
	if err := p.parseItems(root, -1); err != nil {
		return nil, err
	}
	return root, nil
}

type cssParser struct {
	lines     []string
	pos       int
	inComment bool
}

func (p *cssParser) trimmed(i int) string {
	return strings.TrimSpace(p.lines[i])
}

// comment reports whether line i is part of a comment and advances the
// comment state across it.
func (p *cssParser) comment(i int) bool {
	t := p.trimmed(i)
	if p.inComment {
		if strings.Contains(t, "*/") {
			p.inComment = false
		}
		return true
	}
	if strings.HasPrefix(t, "/*") {
		p.inComment = !strings.Contains(t[2:], "*/")
		return true
	}
	return false
}

// parseItems appends items to parent until end of input or, when opened
// is not -1, until the closing brace of the block opened at that line.
func (p *cssParser) parseItems(parent *document.Node, opened int) error {
	for p.pos < len(p.lines) {
		i := p.pos
		raw := p.lines[i]

		if p.comment(i) {
			parent.Append(document.NewLine(document.NodeText, i, raw))
			p.pos++
			continue
		}

		t := p.trimmed(i)
		switch {
		case t == "}":
			if opened < 0 {
				return malformed(i, "unexpected closing brace")
			}
			parent.Append(document.NewLine(document.NodeCSSClosingBrace, i, raw))
			p.pos++
			return nil

		case strings.HasPrefix(t, "@"):
			if err := p.parseAtRule(parent); err != nil {
				return err
			}

		case strings.HasSuffix(t, ",") || strings.HasSuffix(t, "{"):
			if err := p.parseRule(parent, document.NodeCSSSelector); err != nil {
				return err
			}

		default:
			parent.Append(document.NewLine(document.NodeText, i, raw))
			p.pos++
		}
	}

	if opened >= 0 {
		return malformed(opened, "block is never closed")
	}
	return nil
}

func (p *cssParser) parseAtRule(parent *document.Node) error {
	i := p.pos
	t := p.trimmed(i)

	if !strings.HasSuffix(t, "{") {
		parent.Append(document.NewLine(document.NodeCSSAtRule, i, p.lines[i]))
		p.pos++
		return nil
	}

	name := strings.ToLower(t)
	if end := strings.IndexAny(name, " \t{("); end >= 0 {
		name = name[:end]
	}
	if !groupingAtRules[name] {
		return p.parseRule(parent, document.NodeCSSAtRule)
	}

	media := document.NewBlock(document.NodeCSSMedia, i,
		document.NewLine(document.NodeCSSAtRule, i, p.lines[i]))
	p.pos++
	if err := p.parseItems(media, i); err != nil {
		return err
	}
	parent.Append(media)
	return nil
}

// parseRule reads a run of header lines ending in "{", then the rule
// body up to a lone closing brace.
func (p *cssParser) parseRule(parent *document.Node, header document.NodeKind) error {
	start := p.pos
	rule := document.NewBlock(document.NodeCSSRule, start)

	for {
		if p.pos >= len(p.lines) {
			return malformed(start, "selector list is not followed by a block")
		}
		i := p.pos
		t := p.trimmed(i)
		if !strings.HasSuffix(t, ",") && !strings.HasSuffix(t, "{") {
			return malformed(i, "selector list is not followed by a block")
		}
		rule.Append(document.NewLine(header, i, p.lines[i]))
		p.pos++
		if strings.HasSuffix(t, "{") {
			break
		}
	}

	for {
		if p.pos >= len(p.lines) {
			return malformed(start, "rule is missing its closing brace")
		}
		i := p.pos
		raw := p.lines[i]
		p.pos++

		if p.comment(i) {
			rule.Append(document.NewLine(document.NodeText, i, raw))
			continue
		}

		t := p.trimmed(i)
		switch {
		case t == "}":
			rule.Append(document.NewLine(document.NodeCSSClosingBrace, i, raw))
			parent.Append(rule)
			return nil
		case strings.HasSuffix(t, "{"):
			return malformed(i, "nested block inside a rule")
		case strings.Contains(t, ":"):
			rule.Append(document.NewLine(document.NodeCSSProperty, i, raw))
		default:
			rule.Append(document.NewLine(document.NodeText, i, raw))
		}
	}
}
