package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rcjobs/internal/application"
	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// RegisterReadTools adds the tools that never modify the job list.
func RegisterReadTools(s *server.MCPServer, store ports.JobStore, translator *domain.Translator) {
	s.AddTool(listTool(), listHandler(store))
	s.AddTool(showTool(), showHandler(store))
	s.AddTool(parseTool(), parseHandler(translator))
}

// --- list_jobs ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_jobs",
		mcp.WithDescription("List stored rclone jobs in order, with their ID, name, operation, paths and last run status."),
	)
}

func listHandler(store ports.JobStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jobs, err := commands.NewListJobsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(jobs) == 0 {
			return mcp.NewToolResultText("No jobs."), nil
		}

		var sb strings.Builder
		for _, j := range jobs {
			fmt.Fprintf(&sb, "%s  %s  %s\n", j.ID, application.DescribeJob(j), j.LastStatus)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_job ---

func showTool() mcp.Tool {
	return mcp.NewTool("show_job",
		mcp.WithDescription("Show one job and the exact rclone command line it runs."),
		mcp.WithString("job",
			mcp.Description("Job ID or unique job name"),
			mcp.Required(),
		),
	)
}

func showHandler(store ports.JobStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowJobCommand(store, req.GetString("job", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatJob(result.Job)), nil
	}
}

// --- parse_line ---

func parseTool() mcp.Tool {
	return mcp.NewTool("parse_line",
		mcp.WithDescription("Parse an rclone copy, sync, move or delete command line into job settings without storing it."),
		mcp.WithString("line",
			mcp.Description(`Command line, e.g. rclone sync "C:\My Docs" gdrive:docs --transfers 8 -v`),
			mcp.Required(),
		),
	)
}

func parseHandler(translator *domain.Translator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewParseLineCommand(translator, req.GetString("line", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(formatJob(result.Job))
		for _, w := range result.Warnings {
			fmt.Fprintf(&sb, "warning: %s\n", w)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatJob(j domain.Job) string {
	var sb strings.Builder
	if j.ID != "" {
		fmt.Fprintf(&sb, "id:          %s\n", j.ID)
	}
	if j.Name != "" {
		fmt.Fprintf(&sb, "name:        %s\n", j.Name)
	}
	fmt.Fprintf(&sb, "operation:   %s\n", j.Operation.Keyword())
	fmt.Fprintf(&sb, "source:      %s\n", domain.RenderRef(j.Source))
	if j.Operation.IsBinary() {
		fmt.Fprintf(&sb, "destination: %s\n", domain.RenderRef(j.Destination))
		fmt.Fprintf(&sb, "transfers:   %d\n", j.Transfers)
	}
	fmt.Fprintf(&sb, "verbosity:   %s\n", j.Verbosity)
	if j.CreateLogFile {
		fmt.Fprintf(&sb, "log file:    %s\n", j.LogFilePath)
	}
	if j.MinAge != "" {
		fmt.Fprintf(&sb, "min age:     %s\n", j.MinAge)
	}
	for _, p := range j.IncludePatterns {
		fmt.Fprintf(&sb, "include:     %s\n", p)
	}
	for _, p := range j.ExcludePatterns {
		fmt.Fprintf(&sb, "exclude:     %s\n", p)
	}
	if len(j.ExtraFlags) > 0 {
		fmt.Fprintf(&sb, "extra flags: %s\n", j.ExtraFlagsText())
	}
	if j.LastRun != nil {
		fmt.Fprintf(&sb, "last run:    %s (%s)\n", j.LastRun.Format("2006-01-02 15:04:05"), j.LastStatus)
	}
	fmt.Fprintf(&sb, "command:     %s\n", domain.CommandLine(j))
	return sb.String()
}
