package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/configloader"
	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/pkg/config"
	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/fsutil"
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/method"
	_ "github.com/yaklabco/webstego/pkg/method/builtin" // Register built-in methods
	"github.com/yaklabco/webstego/pkg/parser"
)

// session is the resolved state shared by the document commands.
type session struct {
	cfg     *config.Config
	methods []method.Method
	grammar grammar.Grammar
	workDir string
}

// loadSession loads the configuration with cliCfg on top and resolves
// the methods and grammar it names. Invalid flag values are usage errors;
// invalid files are configuration errors.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	logger := logging.FromContext(commandContext(cmd))

	if validation := configloader.Validate(cliCfg); !validation.Valid() {
		return nil, &UsageError{Err: &validation.Errors[0]}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	methods, err := method.DefaultRegistry.Resolve(cfg.Methods)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	g, err := grammar.Parse(cfg.Grammar)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldMethods, methodNames(methods),
		logging.FieldGrammar, g,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{cfg: cfg, methods: methods, grammar: g, workDir: workDir}, nil
}

// parsedDocument is one file read and parsed.
type parsedDocument struct {
	path    string
	text    *fsutil.Text
	info    *fsutil.FileInfo
	grammar grammar.Grammar
	root    *document.Node
}

// loadDocument reads and parses the file at path. With grammar.Auto the
// grammar is detected from the name and content.
func loadDocument(ctx context.Context, path string, g grammar.Grammar) (*parsedDocument, error) {
	text, info, err := fsutil.ReadLines(ctx, path)
	if err != nil {
		return nil, err
	}

	g, err = grammar.Resolve(g, path, []byte(strings.Join(text.Lines, "\n")))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	root, err := parser.Parse(text.Lines, g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &parsedDocument{path: path, text: text, info: info, grammar: g, root: root}, nil
}

func methodNames(methods []method.Method) []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Info().Name
	}
	return names
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// colorMode returns the value of the global --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// usageArgs wraps a cobra argument validator so its failures are usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// methodFlagConfig returns the methods named on the command line, or nil
// when the flag was not given.
func methodFlagConfig(cmd *cobra.Command, names []string) []string {
	if !cmd.Flags().Changed("method") {
		return nil
	}
	return names
}

var errCoverModified = errors.New("file changed since it was read")
