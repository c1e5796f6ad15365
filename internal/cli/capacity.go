package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/webstego/pkg/runner"
)

func newCapacityCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "capacity [paths...]",
		Short: "Show how many bits documents can hide",
		Long: `Show how many bits documents can hide.

For every document the capacity of each selected method is shown on its
own, followed by the capacity of all of them used together. A message of
n characters needs 32 + 8n bits.`,
		Example: `  webstego capacity index.html
  webstego capacity site/ --method quotemark,equals-spacing,trailing-space
  webstego capacity . --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, runner.ModeCapacity, flags)
		},
	}

	flags.register(cmd)

	return cmd
}
