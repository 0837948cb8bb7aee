package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rcjobs/internal/application/commands"
)

var (
	addName   string
	addLogDir string
)

var addCmd = &cobra.Command{
	Use:   "add <command-line>",
	Short: "Store a command line as a job",
	Long: `Parse an rclone command line and store it as a new job.

Without --name the job is called "Job N". With --log-dir (or rclone.log_dir
in the config) jobs without an explicit --log-file log to <dir>/<name>.log.

Examples:
  rcjobs-cli add 'rclone copy C:\Users\me\Docs gdrive:docs --transfers 8'
  rcjobs-cli add --name photos 'rclone sync /photos s3:photos -v'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logDir := addLogDir
		if logDir == "" {
			logDir = env.Config.Rclone.LogDir
		}

		addCmd := commands.NewAddJobCommand(env.Store, env.Translator, strings.Join(args, " "), addName, logDir)
		result, err := addCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "job name")
	addCmd.Flags().StringVar(&addLogDir, "log-dir", "", "directory for per-job rclone log files")
	rootCmd.AddCommand(addCmd)
}
