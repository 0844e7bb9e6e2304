package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "tailorhub",
		Short:         "TailorHub registration backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if options.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			options.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = options.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newServeCommand(options), newResetPasswordCommand(options))
	return root
}
