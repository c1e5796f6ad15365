package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/pkg/config"
	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/stego"
)

func newInspectCommand() *cobra.Command {
	var grammarName string
	var methods []string

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print the structure a document is parsed into",
		Long: `Print the structure a document is parsed into.

Each block is shown with the line it starts on and its length; each line
with its number, kind, collapsed text and the carriers it offers. The
capacity of the selected methods follows the tree.`,
		Example: `  webstego inspect index.html
  webstego inspect theme.css --method sorting`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd, &config.Config{
				Methods: methodFlagConfig(cmd, methods),
				Grammar: grammarName,
			})
			if err != nil {
				return err
			}

			doc, err := loadDocument(commandContext(cmd), args[0], sess.grammar)
			if err != nil {
				return err
			}

			bits, err := stego.Capacity(doc.root, sess.methods...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, document.Dump(doc.root))
			fmt.Fprintf(out, "\n%s: %d bits with %v\n", doc.grammar, bits, methodNames(sess.methods))

			logging.FromContext(commandContext(cmd)).Debug("inspected",
				logging.FieldPath, doc.path,
				logging.FieldNodes, doc.root.LineCount(),
				logging.FieldCapacity, bits,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarName, "grammar", "", "document grammar: auto, html, css")
	cmd.Flags().StringSliceVar(&methods, "method", nil, "methods whose capacity is shown")

	return cmd
}
