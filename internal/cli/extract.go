package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/pkg/config"
	"github.com/yaklabco/webstego/pkg/report"
	"github.com/yaklabco/webstego/pkg/runner"
)

// scanFlags are shared by the commands that walk many documents.
type scanFlags struct {
	methods        []string
	grammar        string
	format         string
	jobs           int
	ignore         []string
	followSymlinks bool
	verbose        bool
	compact        bool
	noSummary      bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.methods, "method", nil, "methods to use (default from config: trailing-space)")
	cmd.Flags().StringVar(&f.grammar, "grammar", "", "document grammar: auto, html, css")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: text, json")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns of paths to skip")
	cmd.Flags().BoolVar(&f.followSymlinks, "follow-symlinks", false, "follow symbolic links to directories")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "write JSON on a single line")
	cmd.Flags().BoolVar(&f.noSummary, "no-summary", false, "omit the summary line")
}

func newExtractCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Recover hidden messages from documents",
		Long: `Recover hidden messages from HTML and CSS documents.

Every file named, and every .html, .htm and .css file under the
directories named, is parsed and read with the selected methods. The
methods must be the ones the message was hidden with.

The exit status is 1 when no document holds a message.`,
		Example: `  webstego extract stego.html
  webstego extract site/ --method sorting,colon-spacing
  webstego extract . --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, runner.ModeExtract, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show how many bits each message was read from")

	return cmd
}

func runScan(cmd *cobra.Command, paths []string, mode runner.Mode, flags *scanFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Methods: methodFlagConfig(cmd, flags.methods),
		Grammar: flags.grammar,
		Format:  config.OutputFormat(flags.format),
		Jobs:    flags.jobs,
		Ignore:  flags.ignore,
	}

	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger.Debug("starting run",
		logging.FieldPaths, paths,
		logging.FieldMethods, methodNames(sess.methods),
		logging.FieldJobs, sess.cfg.Jobs,
	)

	result, err := runner.Run(ctx, runner.Options{
		Paths:          paths,
		WorkingDir:     sess.workDir,
		ExcludeGlobs:   sess.cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           sess.cfg.Jobs,
		Mode:           mode,
		Methods:        sess.methods,
		Grammar:        sess.grammar,
	})
	if err != nil {
		return err
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldMessagesFound, result.Stats.MessagesFound,
	)

	rep, err := report.New(report.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Mode:        mode,
		Color:       colorMode(cmd),
		ShowSummary: !flags.noSummary,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return scanError(result, mode)
}

// scanError turns what the report already showed into the error that
// sets the exit status.
func scanError(result *runner.Result, mode runner.Mode) error {
	if result.HasErrors() {
		for _, file := range result.Files {
			if file.Error != nil {
				return &reportedError{err: file.Error}
			}
		}
	}
	if mode == runner.ModeExtract && result.Stats.MessagesFound == 0 {
		return &reportedError{err: ErrNoMessageFound}
	}
	return nil
}
