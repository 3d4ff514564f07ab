// Package app wires configuration, the fetcher and the search pipeline
// together for the command line entry points.
package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"foodsearch/internal/config"
	"foodsearch/internal/eventbus"
	"foodsearch/internal/fetcher"
	"foodsearch/internal/pipeline"
)

// LogFileName is the default log destination
const LogFileName = "foodsearch.log"

// Overrides are command line values applied over the loaded config.
// Zero values leave the config untouched.
type Overrides struct {
	Endpoint   string
	QueryParam string
	Debounce   time.Duration
	MinLength  int
	Timeout    time.Duration
}

// Apply copies the non-zero overrides into cfg
func (o Overrides) Apply(cfg *config.Config) {
	if o.Endpoint != "" {
		cfg.API.Endpoint = o.Endpoint
	}
	if o.QueryParam != "" {
		cfg.API.QueryParam = o.QueryParam
	}
	if o.Debounce > 0 {
		cfg.Search.DebounceMillis = int(o.Debounce / time.Millisecond)
	}
	if o.MinLength > 0 {
		cfg.Search.MinQueryLength = o.MinLength
	}
	if o.Timeout > 0 {
		cfg.API.TimeoutSeconds = int(o.Timeout / time.Second)
	}
}

// SetupLogging sends the standard logger to path. An empty path discards
// log output. The returned closer is never nil.
func SetupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(logFile)
	return logFile, nil
}

// NewConfigService returns the service for path, or for the user config
// file when path is empty
func NewConfigService(path string, bus eventbus.EventBus) config.ConfigService {
	if path == "" {
		return config.NewConfigServiceWithBus(bus)
	}
	return config.NewConfigServiceAt(path, bus)
}

// LoadConfig loads the config through svc and applies the overrides.
// A broken file is logged and replaced by the defaults; only overrides
// that leave the config invalid are returned as errors.
func LoadConfig(svc config.ConfigService, o Overrides) (*config.Config, error) {
	cfg, err := svc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	} else {
		log.Printf("Loaded config from %s", svc.Path())
	}

	o.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFetcher builds the HTTP fetcher described by cfg
func NewFetcher(cfg *config.Config) *fetcher.Client {
	opts := []fetcher.Option{fetcher.WithTimeout(cfg.Timeout())}
	if cfg.API.UserAgent != "" {
		opts = append(opts, fetcher.WithUserAgent(cfg.API.UserAgent))
	}
	return fetcher.New(cfg.API.Endpoint, cfg.API.QueryParam, opts...)
}

// NewPipeline builds a search pipeline over f using the search settings
// of cfg. Extra options are applied last.
func NewPipeline(cfg *config.Config, f fetcher.Fetcher, bus eventbus.EventBus, extra ...pipeline.Option) *pipeline.Pipeline {
	opts := []pipeline.Option{
		pipeline.WithDebounce(cfg.Debounce()),
		pipeline.WithMinLength(cfg.Search.MinQueryLength),
	}
	opts = append(opts, extra...)
	return pipeline.New(f, bus, opts...)
}

// LogSearchEvents writes search lifecycle events to the standard logger.
// The returned function unsubscribes.
func LogSearchEvents(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchSuperseded, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SearchSupersededEvent); ok {
				log.Printf("Search for '%s' superseded (generation %d)", event.Query, event.Generation)
			}
		}),
		bus.Subscribe(eventbus.EventResultsCleared, func(e eventbus.DomainEvent) {
			log.Printf("Results cleared")
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
				log.Printf("Config %s selects endpoint %s", event.Path, event.Endpoint)
			}
		}),
		bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ConfigSavedEvent); ok {
				log.Printf("Config saved to %s", event.Path)
			}
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
