// Package builtin provides the built-in steganographic methods and
// registers them with method.DefaultRegistry.
//
// Each method is a codec over one carrier value:
//
//	trailing-space  line text      1 bit: a trailing space means 1
//	double-space    line text      1 bit per space: a doubled space means 1
//	quotemark       attribute      1 bit: single quotes mean 1
//	equals-spacing  attribute      2 bits: a space before and after '='
//	colon-spacing   declaration    1 bit: a space after ':' means 1
//	element-id      attribute list 16 bits: a numeric suffix on the id
//	sorting         key set        n-1 bits: the order of n keys
//
// Spaces inside quoted sections never carry bits.
package builtin
