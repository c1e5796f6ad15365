package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/pkg/method"
)

// methodJSON is the JSON form of a registered method.
type methodJSON struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Carrier     string   `json:"carrier"`
	Underflow   string   `json:"underflow"`
	Order       int      `json:"order"`
	Exclusive   bool     `json:"exclusive,omitempty"`
}

func newMethodsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the available embedding methods",
		Long: `List the available embedding methods.

Methods are listed by name with the carrier they write to and what they
do once the message runs out. Any alias may be used in place of a name,
in any letter case. When several methods are combined they run on each
node in the order shown by --format json.`,
		Example: `  webstego methods
  webstego methods --format json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			methods := method.DefaultRegistry.Methods()
			switch format {
			case "text", "":
				printMethods(methods)
				return nil
			case "json":
				return writeMethodsJSON(cmd.OutOrStdout(), methods)
			default:
				return &UsageError{Err: fmt.Errorf("invalid format %q: must be text or json", format)}
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func printMethods(methods []method.Method) {
	logger := logging.NewInteractive()

	for _, m := range methods {
		info := m.Info()
		fields := []any{
			"carrier", info.Carrier.String(),
			"underflow", info.Underflow.String(),
		}
		if len(info.Aliases) > 0 {
			fields = append(fields, "aliases", strings.Join(info.Aliases, ","))
		}
		if info.Exclusive {
			fields = append(fields, "exclusive", true)
		}
		logger.Info(info.Name, fields...)
		logger.Info("  " + info.Description)
	}
}

func writeMethodsJSON(w io.Writer, methods []method.Method) error {
	out := make([]methodJSON, 0, len(methods))
	for _, m := range methods {
		info := m.Info()
		out = append(out, methodJSON{
			Name:        info.Name,
			Aliases:     info.Aliases,
			Description: info.Description,
			Carrier:     info.Carrier.String(),
			Underflow:   info.Underflow.String(),
			Order:       info.Order,
			Exclusive:   info.Exclusive,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode methods: %w", err)
	}
	return nil
}
