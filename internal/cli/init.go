package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/configloader"
	"github.com/yaklabco/webstego/internal/logging"
	"github.com/yaklabco/webstego/pkg/config"
	"github.com/yaklabco/webstego/pkg/method"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new webstego configuration file",
		Long: `Create a new .webstego.yml configuration file in the current directory
with the default settings. The file can be edited to choose methods, the
grammar, verification, backups and output options.`,
		Example: `  webstego init                      Create minimal .webstego.yml
  webstego init --full               Include documentation for every method
  webstego init --format json        Create .webstego.json instead
  webstego init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every method in the template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .webstego.yml or .webstego.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return &UsageError{Err: fmt.Errorf("invalid format %q: must be yaml or json", flags.format)}
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".webstego.json"
		} else {
			outputPath = ".webstego.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		overwrite, err := configloader.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("%s already exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
		if !overwrite {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:    flags.full,
		Format:  flags.format,
		Methods: templateMethods(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("the template documents every available method")
	}
	logger.Info("run 'webstego methods' to see all available methods")

	return nil
}

func templateMethods() []config.MethodInfo {
	methods := method.DefaultRegistry.Methods()
	infos := make([]config.MethodInfo, 0, len(methods))
	for _, m := range methods {
		info := m.Info()
		infos = append(infos, config.MethodInfo{
			Name:        info.Name,
			Aliases:     info.Aliases,
			Description: info.Description,
			Carrier:     info.Carrier.String(),
		})
	}
	return infos
}
