package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <batch-file>",
	Short: "Import rclone lines from a batch or shell script",
	Long: `Import every rclone copy, sync, move and delete line of a batch or shell
script as a job. Jobs are named after the file: the first one gets the base
name, the following ones get "-2", "-3" and so on. Lines without an rclone
invocation are reported and skipped.

Examples:
  rcjobs-cli import nightly.bat
  rcjobs-cli import --dry-run ~/bin/offsite-backup.sh`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		importCmd := commands.NewImportBatchCommand(env.Store, env.Translator, args[0], importDryRun)
		result, err := importCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, j := range result.Jobs {
			fmt.Printf("%-20s %s\n", j.Name, domain.CommandLine(j))
		}
		for _, line := range result.SkippedLines {
			fmt.Printf("skipped: %s\n", line)
		}
		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse only, do not store jobs")
	rootCmd.AddCommand(importCmd)
}
