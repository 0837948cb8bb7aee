package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := commands.NewListJobsCommand(env.Store).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No jobs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tOPERATION\tSOURCE\tDESTINATION\tLAST RUN\tSTATUS")
		for _, j := range jobs {
			lastRun := "-"
			if j.LastRun != nil {
				lastRun = j.LastRun.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				j.Name, j.Operation.Keyword(),
				domain.RenderRef(j.Source), domain.RenderRef(j.Destination),
				lastRun, j.LastStatus)
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <job>",
	Short: "Show a job and its rclone command line",
	Long: `Show a job by ID or name.

Example:
  rcjobs-cli show nightly-2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowJobCommand(env.Store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printJob(result.Job)
		return nil
	},
}

func printJob(j domain.Job) {
	if j.ID != "" {
		fmt.Printf("ID:          %s\n", j.ID)
	}
	if j.Name != "" {
		fmt.Printf("Name:        %s\n", j.Name)
	}
	fmt.Printf("Operation:   %s\n", j.Operation)
	fmt.Printf("Source:      %s\n", describeRef(j.Source))
	if j.Operation.IsBinary() {
		fmt.Printf("Destination: %s\n", describeRef(j.Destination))
		fmt.Printf("Transfers:   %d\n", j.Transfers)
	}
	fmt.Printf("Verbosity:   %s\n", j.Verbosity)
	if j.CreateLogFile {
		fmt.Printf("Log file:    %s\n", j.LogFilePath)
	}
	if j.MinAge != "" {
		fmt.Printf("Min age:     %s\n", j.MinAge)
	}
	for _, p := range j.IncludePatterns {
		fmt.Printf("Include:     %s\n", p)
	}
	for _, p := range j.ExcludePatterns {
		fmt.Printf("Exclude:     %s\n", p)
	}
	if len(j.ExtraFlags) > 0 {
		fmt.Printf("Extra flags: %s\n", j.ExtraFlagsText())
	}
	if j.LastRun != nil {
		fmt.Printf("Last run:    %s (%s)\n", j.LastRun.Local().Format("2006-01-02 15:04:05"), j.LastStatus)
		if j.LastError != "" {
			fmt.Printf("Last error:  %s\n", j.LastError)
		}
	}
	fmt.Printf("Command:     %s\n", domain.CommandLine(j))
}

func describeRef(ref domain.PathRef) string {
	switch r := ref.(type) {
	case domain.RemotePath:
		return fmt.Sprintf("%s (remote %s)", r.Arg(), r.Remote)
	case domain.LocalPath:
		return r.Path + " (local)"
	}
	return "(none)"
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
