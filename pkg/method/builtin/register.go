package builtin

import "github.com/yaklabco/webstego/pkg/method"

// Method names.
const (
	NameTrailingSpace = "trailing-space"
	NameDoubleSpace   = "double-space"
	NameQuotemark     = "quotemark"
	NameEqualsSpacing = "equals-spacing"
	NameColonSpacing  = "colon-spacing"
	NameElementID     = "element-id"
	NameSorting       = "sorting"
)

// Methods returns a fresh instance of every built-in method.
//
// The Order values fix how methods stack on one node: the id suffix is
// added before attributes are reordered, attributes are reordered before
// their quotes and spacing are set, and the trailing space comes last so
// that no later rewrite of the line can drop it.
func Methods() []method.Method {
	return []method.Method{
		method.NewAttributeListMethod(method.Info{
			Name:        NameElementID,
			Aliases:     []string{"ElementId", "id"},
			Description: "16-bit number appended to the id of each opening tag",
			Underflow:   method.Skip,
			Order:       10,
		}, ElementID{}),
		method.NewKeySetMethod(method.Info{
			Name:        NameSorting,
			Aliases:     []string{"permutation", "sort"},
			Description: "order of tag attributes and rule properties",
			Underflow:   method.Skip,
			Order:       20,
		}, Sorting{}),
		method.NewAttributeMethod(method.Info{
			Name:        NameQuotemark,
			Aliases:     []string{"quote"},
			Description: "single or double quotes around attribute values",
			Underflow:   method.Pad,
			Order:       30,
		}, Quotemark{}),
		method.NewAttributeMethod(method.Info{
			Name:        NameEqualsSpacing,
			Aliases:     []string{"EqualsSpacing", "equals"},
			Description: "spaces around the = of attributes",
			Underflow:   method.Pad,
			Order:       40,
		}, EqualsSpacing{}),
		method.NewDeclarationMethod(method.Info{
			Name:        NameColonSpacing,
			Aliases:     []string{"ColonSpacing", "colon"},
			Description: "space after the colon of CSS declarations",
			Underflow:   method.Pad,
			Order:       50,
		}, ColonSpacing{}),
		method.NewTextMethod(method.Info{
			Name:        NameTrailingSpace,
			Aliases:     []string{"TrailingSpace", "trailing"},
			Description: "trailing space at the end of each line",
			Underflow:   method.Pad,
			Order:       60,
		}, TrailingSpace{}),
		method.NewTextMethod(method.Info{
			Name:        NameDoubleSpace,
			Aliases:     []string{"DoubleSpace", "double"},
			Description: "doubled spaces between words",
			Underflow:   method.Pad,
			Order:       70,
			Exclusive:   true,
		}, DoubleSpace{}),
	}
}

// RegisterAll registers all built-in methods with the given registry.
func RegisterAll(registry *method.Registry) {
	for _, m := range Methods() {
		registry.Register(m)
	}
}

// init registers all built-in methods with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic method registration
func init() {
	RegisterAll(method.DefaultRegistry)
}
