package cli

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/internal/ui/pretty"
	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/config"
	"github.com/yaklabco/webstego/pkg/diff"
	"github.com/yaklabco/webstego/pkg/fsutil"
	"github.com/yaklabco/webstego/pkg/method/builtin"
	"github.com/yaklabco/webstego/pkg/stego"
	"github.com/yaklabco/webstego/pkg/verify"
)

type embedFlags struct {
	message     string
	messageFile string
	output      string
	methods     []string
	grammar     string
	showDiff    bool
	noVerify    bool
	noBackups   bool
	dryRun      bool
}

func newEmbedCommand() *cobra.Command {
	flags := &embedFlags{}

	cmd := &cobra.Command{
		Use:   "embed <cover>",
		Short: "Hide a message in an HTML or CSS document",
		Long: `Hide a message in an HTML or CSS document.

The cover is parsed, the message is framed with its length and written
into the carrier sites of the selected methods, and the result is checked
to mean the same as the cover before it is written. Without --output the
cover is replaced in place, after a backup copy has been made.

Every character of the message must be in ISO-8859-1.`,
		Example: `  webstego embed index.html -m "meet at noon"
  webstego embed site.css -m secret -o stego.css --method sorting,colon
  webstego embed page.html --message-file note.txt --diff --dry-run`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.message, "message", "m", "", "message to hide")
	cmd.Flags().StringVar(&flags.messageFile, "message-file", "", "read the message from a file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the stego document here instead of replacing the cover")
	cmd.Flags().StringSliceVar(&flags.methods, "method", nil, "methods to use (default from config: trailing-space)")
	cmd.Flags().StringVar(&flags.grammar, "grammar", "", "document grammar: auto, html, css")
	cmd.Flags().BoolVar(&flags.showDiff, "diff", false, "show the changed lines")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "skip the equivalence check")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not back up a cover replaced in place")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "embed and check, but write nothing")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")

	return cmd
}

func runEmbed(cmd *cobra.Command, coverPath string, flags *embedFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	message, err := embedMessage(cmd, flags)
	if err != nil {
		return err
	}

	cliCfg := &config.Config{
		Methods: methodFlagConfig(cmd, flags.methods),
		Grammar: flags.grammar,
	}
	if flags.noVerify {
		cliCfg.Verify = config.Bool(false)
	}
	if flags.noBackups {
		cliCfg.Backups.Enabled = config.Bool(false)
	}

	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := loadDocument(ctx, coverPath, sess.grammar)
	if err != nil {
		return err
	}

	stream, err := bitstream.FromText(message)
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}

	available, err := stego.Capacity(doc.root, sess.methods...)
	if err != nil {
		return err
	}

	logger.Info("cover",
		logging.FieldPath, coverPath,
		logging.FieldGrammar, doc.grammar,
		logging.FieldMethods, methodNames(sess.methods),
		logging.FieldCapacity, available,
		logging.FieldBits, stream.Len(),
	)

	if stream.Len() > available {
		return fmt.Errorf("%w: %d bits needed, %d available", stego.ErrInsufficientCapacity, stream.Len(), available)
	}

	cover := slices.Clone(doc.text.Lines)
	stats, err := stego.Embed(doc.root, stream, sess.methods...)
	if err != nil {
		return err
	}
	stegoLines := doc.root.Lines()

	if sess.cfg.VerifyEnabled() {
		opts := verify.Options{IgnoreIDSuffixes: usesMethod(sess, builtin.NameElementID)}
		if err := verify.Lines(doc.grammar, cover, stegoLines, opts); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		logger.Debug("stego document verified", logging.FieldPath, coverPath)
	}

	changes := diff.Lines(coverPath, cover, stegoLines)
	if flags.showDiff {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatDiff(changes, true))
	}

	changed := 0
	if changes != nil {
		changed = changes.Changed
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = coverPath
	}

	if flags.dryRun {
		logger.Info("dry run; nothing written",
			logging.FieldBits, stats.Bits,
			logging.FieldSites, stats.Sites,
			logging.FieldChanged, changed,
		)
		return nil
	}

	if err := writeStego(cmd, sess, doc, outputPath, stegoLines); err != nil {
		return err
	}

	logger.Info("message hidden",
		logging.FieldOutput, outputPath,
		logging.FieldBits, stats.Bits,
		logging.FieldSites, stats.Sites,
		logging.FieldChanged, changed,
	)
	return nil
}

// embedMessage returns the message given by -m or --message-file.
func embedMessage(cmd *cobra.Command, flags *embedFlags) (string, error) {
	switch {
	case flags.messageFile != "":
		content, _, err := fsutil.ReadFile(commandContext(cmd), flags.messageFile)
		if err != nil {
			return "", fmt.Errorf("message file: %w", err)
		}
		return string(content), nil
	case cmd.Flags().Changed("message"):
		return flags.message, nil
	default:
		return "", &UsageError{Err: errors.New("a message is required: use --message or --message-file")}
	}
}

// writeStego writes lines to outputPath. A cover replaced in place is
// checked for changes made since it was read and backed up first.
func writeStego(cmd *cobra.Command, sess *session, doc *parsedDocument, outputPath string, lines []string) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	mode := doc.info.Mode.Perm()
	if samePath(outputPath, doc.path) {
		modified, err := fsutil.CheckModified(ctx, doc.info)
		if err != nil {
			return err
		}
		if modified {
			return fmt.Errorf("%w: %s", errCoverModified, doc.path)
		}

		if sess.cfg.BackupsEnabled() {
			backupMode := cmp.Or(fsutil.BackupMode(sess.cfg.Backups.Mode), fsutil.BackupModeSidecar)
			created, err := fsutil.CreateBackup(ctx, doc.path, fsutil.BackupConfig{Enabled: true, Mode: backupMode})
			if err != nil {
				return err
			}
			if created {
				logger.Info("backup written", logging.FieldBackup, fsutil.BackupPath(doc.path, backupMode))
			}
		}
	}

	if err := fsutil.WriteLines(ctx, outputPath, doc.text, lines, mode); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

func usesMethod(sess *session, name string) bool {
	return slices.Contains(methodNames(sess.methods), name)
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
