package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/internal/ui/pretty"
	"github.com/yaklabco/webstego/pkg/config"
	"github.com/yaklabco/webstego/pkg/diff"
	"github.com/yaklabco/webstego/pkg/verify"
)

type verifyFlags struct {
	grammar   string
	ignoreIDs bool
	showDiff  bool
}

func newVerifyCommand() *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify <cover> <stego>",
		Short: "Check that a stego document means the same as its cover",
		Long: `Check that a stego document means the same as its cover.

HTML documents are compared token by token: the same tags, the same
attribute sets and the same text once whitespace is collapsed. CSS
documents are compared rule by rule and declaration by declaration.
Attribute order, quoting and spacing are ignored.

Use --ignore-ids when the element-id method was used, so that the
numeric suffixes it appends to id values are not reported.`,
		Example: `  webstego verify index.html stego.html
  webstego verify theme.css stego.css --diff`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVar(&flags.grammar, "grammar", "", "document grammar: auto, html, css")
	cmd.Flags().BoolVar(&flags.ignoreIDs, "ignore-ids", false, "ignore id suffixes added by the element-id method")
	cmd.Flags().BoolVar(&flags.showDiff, "diff", false, "show the changed lines")

	return cmd
}

func runVerify(cmd *cobra.Command, coverPath, stegoPath string, flags *verifyFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	sess, err := loadSession(cmd, &config.Config{Grammar: flags.grammar})
	if err != nil {
		return err
	}

	cover, err := loadDocument(ctx, coverPath, sess.grammar)
	if err != nil {
		return err
	}
	// Both documents are read with the cover's grammar.
	stegoDoc, err := loadDocument(ctx, stegoPath, cover.grammar)
	if err != nil {
		return err
	}

	if flags.showDiff {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
		changes := diff.Lines(stegoPath, cover.text.Lines, stegoDoc.text.Lines)
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatDiff(changes, true))
	}

	opts := verify.Options{IgnoreIDSuffixes: flags.ignoreIDs}
	if err := verify.Lines(cover.grammar, cover.text.Lines, stegoDoc.text.Lines, opts); err != nil {
		return err
	}

	logger.Info("documents are equivalent",
		logging.FieldPath, stegoPath,
		logging.FieldGrammar, cover.grammar,
	)
	return nil
}
