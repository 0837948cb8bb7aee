package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "rcjobs/internal/adapters/mcp"
	"rcjobs/internal/bootstrap"
)

func main() {
	configFlag := flag.String("config", "", "config file (default $RCJOBS_CONFIG or ~/.config/rcjobs/config.yaml)")
	storeFlag := flag.String("store", "", "job store path")
	logFileFlag := flag.String("log-file", "", "write logs to this file instead of stderr")
	flag.Parse()

	env, err := bootstrap.Open(bootstrap.Options{
		ConfigPath: *configFlag,
		StorePath:  *storeFlag,
		LogFile:    *logFileFlag,
	})
	if err != nil {
		log.Fatalf("rcjobs-mcp: %v", err)
	}
	defer env.Close()

	mcpServer := server.NewMCPServer(
		"rcjobs-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, env.Store, env.Translator)
	mcpadapter.RegisterWriteTools(mcpServer, env.Store, env.Translator, env.Runner)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Printf("rcjobs-mcp: %v", err)
	}
}
