package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcjobs/internal/application/commands"
)

var renameCmd = &cobra.Command{
	Use:   "rename <job> <new-name>",
	Short: "Rename a job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenameCommand(env.Store, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <job>",
	Short: "Remove a job from the list",
	Long: `Remove a job from the job list. This only forgets the job; it does not
run rclone or touch any files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteCommand(env.Store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
}
