// Package cli provides the Cobra command structure for webstego.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root webstego command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "webstego",
		Short: "Hide text messages in the formatting of HTML and CSS files",
		Long: `webstego hides a short text message in an HTML or CSS document without
changing what the document means to a browser.

The message is written into formatting freedoms the languages allow:
trailing spaces, doubled spaces, quote characters, spacing around = and :,
the order of attributes and properties, and suffixes on element ids. The
stego document renders exactly like its cover, and the message can be
recovered from it with the same methods.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	// Add subcommands.
	rootCmd.AddCommand(newEmbedCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newCapacityCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newMethodsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
