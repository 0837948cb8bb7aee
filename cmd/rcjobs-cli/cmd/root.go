package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rcjobs/internal/bootstrap"
)

var (
	configPath string
	storePath  string
	logLevel   string
	env        *bootstrap.Env
)

var rootCmd = &cobra.Command{
	Use:   "rcjobs-cli",
	Short: "Manage rclone jobs translated from command lines",
	Long: `rcjobs-cli turns rclone copy, sync, move and delete command lines into
stored jobs and runs them.

Jobs can be added one command line at a time or imported from existing
batch and shell scripts. Each job is rendered back into the exact rclone
invocation it runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		env, err = bootstrap.Open(bootstrap.Options{
			ConfigPath: configPath,
			StorePath:  storePath,
			LogLevel:   logLevel,
		})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if env == nil {
			return nil
		}
		return env.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $RCJOBS_CONFIG or ~/.config/rcjobs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "job store path (overrides store.path)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
