package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"foodsearch/internal/app"
	"foodsearch/internal/catalog"
	"foodsearch/internal/domain"
	"foodsearch/internal/eventbus"
	"foodsearch/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		logPath    string
		overrides  app.Overrides
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.StringVar(&logPath, "log", app.LogFileName, "Log file, empty to disable logging")
	flag.StringVar(&overrides.Endpoint, "endpoint", "", "Search API endpoint")
	flag.StringVar(&overrides.QueryParam, "param", "", "Query parameter carrying the search text")
	flag.DurationVar(&overrides.Debounce, "debounce", 0, "Quiet period before a search starts")
	flag.IntVar(&overrides.MinLength, "min", 0, "Minimum query length")
	flag.Parse()

	// Set up logging
	logFile, err := app.SetupLogging(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logFile.Close()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()
	defer app.LogSearchEvents(bus)()

	// Load configuration
	configSvc := app.NewConfigService(configPath, bus)
	cfg, err := app.LoadConfig(configSvc, overrides)
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	searcher := app.NewPipeline(cfg, app.NewFetcher(cfg), bus)
	defer searcher.Close()

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(searcher, cfg, catalog.New(cfg.Messages))

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward pipeline output to the UI
	unsubscribeStates := searcher.Subscribe(func(s domain.ViewState) {
		p.Send(ui.StateMsg{State: s})
	})
	defer unsubscribeStates()
	defer ui.ForwardEvents(bus, p.Send)()

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}
