package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"foodsearch/internal/app"
	"foodsearch/internal/catalog"
	"foodsearch/internal/domain"
)

// settleMargin is added to the debounce window before waiting for results
const settleMargin = 50 * time.Millisecond

func newStreamCmd(c *cli) *cobra.Command {
	var (
		jsonOutput bool
		clearShort bool
		interval   time.Duration
		wait       time.Duration
		search     app.Overrides
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Feed stdin lines through the search pipeline",
		Long: `Treat every stdin line as the new value of the search field and print
each view state the pipeline produces. After the last line the command
waits for the final search to settle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search.Apply(c.cfg)

			p := app.NewPipeline(c.cfg, app.NewFetcher(c.cfg), c.bus)
			defer p.Close()

			printer := newStatePrinter(cmd.OutOrStdout(), c.catalog, jsonOutput)
			settled := make(chan struct{}, 1)
			// Stays subscribed until the bus closes so queued states still print
			p.Subscribe(func(s domain.ViewState) {
				printer.Print(s)
				if s.Phase != domain.PhaseLoading {
					select {
					case settled <- struct{}{}:
					default:
					}
				}
			})

			scanner := bufio.NewScanner(cmd.InOrStdin())
			first := true
			for scanner.Scan() {
				if !first && interval > 0 {
					time.Sleep(interval)
				}
				first = false

				text := scanner.Text()
				if clearShort && uniseg.GraphemeClusterCount(text) < c.cfg.Search.MinQueryLength {
					p.Clear()
				}
				p.Send(text)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			// Let the last value survive its quiet period
			time.Sleep(c.cfg.Debounce() + settleMargin)

			deadline := time.After(wait)
			for p.State().Phase == domain.PhaseLoading {
				select {
				case <-settled:
				case <-deadline:
					return fmt.Errorf("search still running after %s", wait)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&jsonOutput, "json", false, "print one JSON object per state")
	flags.BoolVar(&clearShort, "clear-short", true, "clear results before forwarding values below the minimum length")
	flags.DurationVar(&interval, "interval", 0, "pause between input lines")
	flags.DurationVar(&wait, "wait", 10*time.Second, "how long to wait for the last search")
	flags.DurationVar(&search.Debounce, "debounce", 0, "quiet period before a search starts")
	flags.IntVar(&search.MinLength, "min", 0, "minimum query length")
	return cmd
}

// statePrinter writes view states as text or JSON lines
type statePrinter struct {
	w       io.Writer
	catalog *catalog.Catalog
	json    bool
	seq     int
}

func newStatePrinter(w io.Writer, cat *catalog.Catalog, jsonOutput bool) *statePrinter {
	return &statePrinter{w: w, catalog: cat, json: jsonOutput}
}

type stateJSON struct {
	Seq     int              `json:"seq"`
	Phase   string           `json:"phase"`
	Items   []map[string]any `json:"items,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Print writes one state
func (p *statePrinter) Print(s domain.ViewState) {
	p.seq++

	var message string
	if m, ok := catalog.ForState(s); ok {
		message = p.catalog.Text(m)
	}

	if p.json {
		out := stateJSON{Seq: p.seq, Phase: s.Phase.String(), Message: message}
		if len(s.Items) > 0 {
			out.Items = itemsJSON(s.Items)
		}
		if s.Err != nil {
			out.Error = s.Err.Error()
		}
		data, err := json.Marshal(out)
		if err != nil {
			fmt.Fprintf(p.w, "{\"seq\":%d,\"error\":%q}\n", p.seq, err.Error())
			return
		}
		fmt.Fprintln(p.w, string(data))
		return
	}

	if message != "" {
		fmt.Fprintf(p.w, "[%d] %s  %s\n", p.seq, s, message)
	} else {
		fmt.Fprintf(p.w, "[%d] %s\n", p.seq, s)
	}
	for _, item := range s.Items {
		fmt.Fprintf(p.w, "    %s\n", item.Name)
	}
}
