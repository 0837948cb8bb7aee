package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	homedir "github.com/mitchellh/go-homedir"

	"rcjobs/internal/adapters/editor"
	"rcjobs/internal/adapters/tui"
	"rcjobs/internal/bootstrap"
)

const defaultLogFile = "~/.local/state/rcjobs/tui.log"

func main() {
	configFlag := flag.String("config", "", "config file (default $RCJOBS_CONFIG or ~/.config/rcjobs/config.yaml)")
	storeFlag := flag.String("store", "", "job store path")
	logFileFlag := flag.String("log-file", defaultLogFile, "application log file")
	flag.Parse()

	if err := run(*configFlag, *storeFlag, *logFileFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, storePath, logFile string) error {
	// logs must not reach the terminal the TUI draws on
	logFile, err := homedir.Expand(logFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	env, err := bootstrap.Open(bootstrap.Options{
		ConfigPath: configPath,
		StorePath:  storePath,
		LogFile:    logFile,
	})
	if err != nil {
		return err
	}
	defer env.Close()

	app := tui.NewApp(tui.Options{
		Store:      env.Store,
		Translator: env.Translator,
		Runner:     env.Runner,
		Editor:     editor.NewOpener(editor.WithCommand(env.Config.TUI.Editor)),
		LogDir:     env.Config.Rclone.LogDir,
		Parallel:   env.Config.Run.Parallel,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
