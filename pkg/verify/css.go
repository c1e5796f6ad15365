package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// CSS reports whether two style sheets hold the same rules with the same
// declarations. Property order within a rule is not significant.
func CSS(cover, stego string) error {
	coverItems, err := cssItems(cover)
	if err != nil {
		return fmt.Errorf("parsing cover: %w", err)
	}
	stegoItems, err := cssItems(stego)
	if err != nil {
		return fmt.Errorf("parsing stego: %w", err)
	}
	return compare(coverItems, stegoItems)
}

// cssItems flattens a style sheet to one string per rule.
func cssItems(text string) ([]string, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}

	var items []string
	var flatten func(rules []*css.Rule, depth int)
	flatten = func(rules []*css.Rule, depth int) {
		for _, rule := range rules {
			items = append(items, ruleString(rule, depth))
			flatten(rule.Rules, depth+1)
		}
	}
	flatten(sheet.Rules, 0)
	return items, nil
}

func ruleString(rule *css.Rule, depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s %s", depth, rule.Name, squash(rule.Prelude))

	decls := make(css.DeclarationsByProperty, len(rule.Declarations))
	copy(decls, rule.Declarations)
	sort.Stable(decls)

	for _, d := range decls {
		fmt.Fprintf(&b, " %s:%s", strings.ToLower(d.Property), squash(d.Value))
		if d.Important {
			b.WriteString("!important")
		}
		b.WriteByte(';')
	}
	return b.String()
}
