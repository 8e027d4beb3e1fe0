package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ndexcontent/tcgaloader/internal/cli"
	tcgaerrors "github.com/ndexcontent/tcgaloader/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", tcgaerrors.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps configuration and usage errors to 2, everything else to 1.
func exitCode(err error) int {
	switch tcgaerrors.GetCode(err) {
	case tcgaerrors.ErrCodeInvalidInput, tcgaerrors.ErrCodeInvalidConfig,
		tcgaerrors.ErrCodeInvalidLoadPlan, tcgaerrors.ErrCodeInvalidPath:
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Apply the log level before any command runs
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
