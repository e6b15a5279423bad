// cmd/planboard/main.go
//
// This is the entry point for the planboard console.
//
// Flow:
// 1. Resolve the project directory and make sure .planboard/ exists
// 2. Load config.yaml and open the logbook
// 3. Build the in-memory plan store from the configured seed
// 4. Launch the TUI

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/planboard/internal/config"
	"github.com/kingrea/planboard/internal/logbook"
	"github.com/kingrea/planboard/internal/plan"
	"github.com/kingrea/planboard/internal/tui"
)

func main() {
	dir := flag.String("dir", "", "project directory holding .planboard/ (default: current directory)")
	seed := flag.Bool("seed", true, "load the plans listed under seed: in config.yaml")
	flag.Parse()

	projectDir := *dir
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		projectDir = cwd
	}

	if err := config.InitDir(projectDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .planboard directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}

	var plans []plan.Plan
	if *seed {
		plans, err = cfg.SeedPlans()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading seed plans: %v\n", err)
			os.Exit(1)
		}
	}
	store, err := plan.NewStore(plan.WithSeed(plans), plan.WithLogger(lb))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building plan store: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cfg, tui.WithStore(store), tui.WithLogbook(lb))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting console: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// Run blocks until the user quits
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		app.Close()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
