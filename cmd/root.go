package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/compozy/autotag/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autotag",
		Short: "Tag the package.json version on GitHub",
		Long: `autotag reads the version from package.json and makes sure an annotated
tag and its refs/tags reference exist on GitHub.

Run without a sub-command, as the GitHub Action does, it behaves like "autotag tag".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTag,
	}
	config.RegisterFlags(cmd.PersistentFlags())
	return cmd
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
