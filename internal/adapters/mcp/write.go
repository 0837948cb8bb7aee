package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rcjobs/internal/application"
	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// RegisterWriteTools adds the tools that change or run jobs.
func RegisterWriteTools(s *server.MCPServer, store ports.JobStore, translator *domain.Translator, runner ports.ProcessRunner) {
	s.AddTool(addTool(), addHandler(store, translator))
	s.AddTool(importTool(), importHandler(store, translator))
	s.AddTool(renameTool(), renameHandler(store))
	s.AddTool(deleteTool(), deleteHandler(store))
	s.AddTool(runTool(), runHandler(store, runner))
}

// --- add_job ---

func addTool() mcp.Tool {
	return mcp.NewTool("add_job",
		mcp.WithDescription("Parse an rclone command line and store it as a new job."),
		mcp.WithString("line",
			mcp.Description("rclone copy, sync, move or delete command line"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description(`Job name. Defaults to "Job N".`),
		),
	)
}

func addHandler(store ports.JobStore, translator *domain.Translator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddJobCommand(store, translator,
			req.GetString("line", ""), req.GetString("name", ""), "")
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(withWarnings(result.Message, result.Warnings)), nil
	}
}

// --- import_file ---

func importTool() mcp.Tool {
	return mcp.NewTool("import_file",
		mcp.WithDescription("Import every rclone copy, sync, move and delete line of a batch or shell script as jobs named after the file."),
		mcp.WithString("path",
			mcp.Description("Path to the .bat, .cmd or .sh file"),
			mcp.Required(),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Parse only, do not store the jobs"),
		),
	)
}

func importHandler(store ports.JobStore, translator *domain.Translator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewImportBatchCommand(store, translator,
			req.GetString("path", ""), req.GetBool("dry_run", false))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, j := range result.Jobs {
			fmt.Fprintf(&sb, "%s  %s\n", j.Name, domain.CommandLine(j))
		}
		for _, line := range result.SkippedLines {
			fmt.Fprintf(&sb, "skipped: %s\n", line)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(&sb, "warning: %s\n", w)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- rename_job ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename_job",
		mcp.WithDescription("Rename a stored job."),
		mcp.WithString("job",
			mcp.Description("Job ID or unique job name"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New job name"),
			mcp.Required(),
		),
	)
}

func renameHandler(store ports.JobStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameCommand(store, req.GetString("job", ""), req.GetString("new_name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_job ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_job",
		mcp.WithDescription("Remove a job from the job list. Files are not touched."),
		mcp.WithString("job",
			mcp.Description("Job ID or unique job name"),
			mcp.Required(),
		),
	)
}

func deleteHandler(store ports.JobStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(store, req.GetString("job", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- run_job ---

func runTool() mcp.Tool {
	return mcp.NewTool("run_job",
		mcp.WithDescription("Run a stored job with rclone and wait for it to finish."),
		mcp.WithString("job",
			mcp.Description("Job ID or unique job name"),
			mcp.Required(),
		),
	)
}

func runHandler(store ports.JobStore, runner ports.ProcessRunner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewRunJobCommand(store, runner, req.GetString("job", "")).Execute(ctx)
		var runErr *application.RunError
		if errors.As(err, &runErr) && result != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed with exit code %d\n%s",
				result.Job.Name, runErr.ExitCode, result.Output.Stderr)), nil
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s finished: %s\n%s",
			result.Job.Name, result.Job.LastStatus, result.Output.Stdout)), nil
	}
}

func withWarnings(msg string, warnings []string) string {
	if len(warnings) == 0 {
		return msg
	}
	return msg + "\nwarning: " + strings.Join(warnings, "\nwarning: ")
}
