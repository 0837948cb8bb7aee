package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X rcjobs/cmd/rcjobs-cli/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print rcjobs and rclone versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("rcjobs %s\n", Version)

		v, err := env.Runner.Version(cmd.Context())
		if err != nil {
			fmt.Printf("rclone: not available (%v)\n", err)
			return nil
		}
		fmt.Println(v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
