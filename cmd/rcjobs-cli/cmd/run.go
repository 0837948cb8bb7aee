package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rcjobs/internal/application"
	"rcjobs/internal/application/commands"
)

var (
	runAll      bool
	runParallel int
)

var runCmd = &cobra.Command{
	Use:   "run [job]",
	Short: "Run a job, or every job with --all",
	Long: `Run a stored job with rclone and record the outcome.

Examples:
  rcjobs-cli run nightly
  rcjobs-cli run --all --parallel 2`,
	Args: func(cmd *cobra.Command, args []string) error {
		if runAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if runAll {
			return runAllJobs(cmd)
		}

		result, err := commands.NewRunJobCommand(env.Store, env.Runner, args[0]).Execute(cmd.Context())
		if result != nil {
			fmt.Print(result.Output.Stdout)
			fmt.Fprint(os.Stderr, result.Output.Stderr)
			if result.Output.Stderr != "" {
				fmt.Fprintln(os.Stderr)
			}
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", result.Job.Name, result.Job.LastStatus)
		return nil
	},
}

func runAllJobs(cmd *cobra.Command) error {
	parallel := runParallel
	if parallel == 0 {
		parallel = env.Config.Run.Parallel
	}

	result, err := commands.NewRunAllCommand(env.Store, env.Runner, parallel).Execute(cmd.Context())
	if result == nil {
		return err
	}

	for _, o := range result.Outcomes {
		status := o.Job.LastStatus.String()
		var runErr *application.RunError
		switch {
		case errors.As(o.Err, &runErr):
			status = fmt.Sprintf("%s (exit %d)", o.Job.LastStatus, runErr.ExitCode)
		case o.Err != nil:
			status = o.Err.Error()
		}
		fmt.Printf("%-20s %s\n", o.Job.Name, status)
	}
	fmt.Printf("%d succeeded, %d failed\n", result.Succeeded, result.Failed)
	return err
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "run every stored job")
	runCmd.Flags().IntVar(&runParallel, "parallel", 0, "jobs to run at once with --all (default run.parallel)")
	rootCmd.AddCommand(runCmd)
}
