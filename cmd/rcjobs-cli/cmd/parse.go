package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rcjobs/internal/application/commands"
)

var parseCmd = &cobra.Command{
	Use:   "parse <command-line>",
	Short: "Show how a command line is translated, without storing it",
	Long: `Parse an rclone command line and print the resulting job settings and
the normalized invocation.

Example:
  rcjobs-cli parse 'rclone sync myremote:backups/ /data/restore -v --include *.jpg'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parseCmd := commands.NewParseLineCommand(env.Translator, strings.Join(args, " "))
		result, err := parseCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		printJob(result.Job)
		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
