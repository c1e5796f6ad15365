// Package main is the entry point for the webstego CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/webstego/internal/cli"
	"github.com/yaklabco/webstego/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logging.Default().Error("internal error", logging.FieldError, fmt.Sprint(r))
			code = cli.ExitInternalError
		}
	}()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	ctx := logging.WithLogger(context.Background(), logging.Default())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Reported failures were already printed with the results.
		if !cli.IsReported(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
