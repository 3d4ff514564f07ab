package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"foodsearch/internal/app"
	"foodsearch/internal/catalog"
	"foodsearch/internal/config"
	"foodsearch/internal/eventbus"
)

// cli holds what the persistent flags resolve to
type cli struct {
	configPath string
	logPath    string
	overrides  app.Overrides

	bus       eventbus.EventBus
	configSvc config.ConfigService
	cfg       *config.Config
	catalog   *catalog.Catalog
	logFile   io.Closer
	stopLogs  func()
}

// newRootCmd builds the command tree. The caller must call close on the
// returned cli once Execute returns, failed or not, since cobra skips
// post-run hooks after an error.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "foodsearch",
		Short: "Search the food API from the command line",
		Long: `foodsearch queries the food search API.

Example usage:
  foodsearch fetch chicken            # One lookup, print the items
  printf 'p\npi\npiz\n' | foodsearch stream
                                      # Feed keystrokes, print view states
  foodsearch config init              # Write the default config file`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default is the user config dir)")
	flags.StringVar(&c.logPath, "log", "", "log file (default discards logs)")
	flags.StringVar(&c.overrides.Endpoint, "endpoint", "", "search API endpoint")
	flags.StringVar(&c.overrides.QueryParam, "param", "", "query parameter carrying the search text")
	flags.DurationVar(&c.overrides.Timeout, "timeout", 0, "HTTP client timeout")

	rootCmd.AddCommand(newFetchCmd(c))
	rootCmd.AddCommand(newStreamCmd(c))
	rootCmd.AddCommand(newConfigCmd(c))

	return rootCmd, c
}

// init sets up logging, the event bus and the effective configuration
func (c *cli) init() error {
	logFile, err := app.SetupLogging(c.logPath)
	c.logFile = logFile
	if err != nil {
		return err
	}

	c.bus = eventbus.New()
	c.stopLogs = app.LogSearchEvents(c.bus)
	c.configSvc = app.NewConfigService(c.configPath, c.bus)

	c.cfg, err = app.LoadConfig(c.configSvc, c.overrides)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.catalog = catalog.New(c.cfg.Messages)

	log.Printf("Using endpoint %s (param %s)", c.cfg.API.Endpoint, c.cfg.API.QueryParam)
	return nil
}

// close drains the event bus and closes the log file
func (c *cli) close() {
	if c.bus != nil {
		c.bus.Close()
	}
	if c.stopLogs != nil {
		c.stopLogs()
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}
