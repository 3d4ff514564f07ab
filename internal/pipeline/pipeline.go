// Package pipeline turns a live sequence of raw search-field values into a
// live sequence of view states.
//
// Values go through, in order: adjacent deduplication, a debounce window,
// a minimum length filter and a latest-wins fetch. All mutable state lives
// on one loop goroutine; each fetch carries the generation that started it
// and its result is applied only if that generation is still current.
package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rivo/uniseg"

	"foodsearch/internal/domain"
	"foodsearch/internal/eventbus"
	"foodsearch/internal/fetcher"
)

const (
	DefaultDebounce  = 500 * time.Millisecond
	DefaultMinLength = 3
)

// Option configures a Pipeline
type Option func(*Pipeline)

// WithClock sets the clock used for the debounce timer
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithDebounce sets the quiet period a value must survive
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.debounce = d
		}
	}
}

// WithMinLength sets the minimum query length in user-perceived characters
func WithMinLength(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.minLength = n
		}
	}
}

type command struct {
	text  string
	clear bool
	done  chan struct{}
}

type fetchResult struct {
	generation uint64
	query      string
	items      []domain.FoodItem
	err        error
}

// Pipeline is the keystroke-to-state machine
type Pipeline struct {
	fetcher   fetcher.Fetcher
	bus       eventbus.EventBus
	ownsBus   bool
	clock     clockwork.Clock
	debounce  time.Duration
	minLength int

	commands chan command
	results  chan fetchResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.RWMutex
	state domain.ViewState

	// Owned by the loop goroutine
	lastAccepted string
	pending      string
	timer        clockwork.Timer
	generation   uint64
	inFlight     string
	cancelFetch  context.CancelFunc
	seq          uint64
}

// New starts a pipeline in the NotStarted state. A nil bus gets a private
// one that Close shuts down.
func New(f fetcher.Fetcher, bus eventbus.EventBus, opts ...Option) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		fetcher:   f,
		bus:       bus,
		clock:     clockwork.NewRealClock(),
		debounce:  DefaultDebounce,
		minLength: DefaultMinLength,
		commands:  make(chan command),
		results:   make(chan fetchResult),
		ctx:       ctx,
		cancel:    cancel,
		state:     domain.NotStarted(),
	}
	if p.bus == nil {
		p.bus = eventbus.New()
		p.ownsBus = true
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(1)
	go p.run()

	return p
}

// Send feeds the current value of the search field. It returns once the
// value has been deduplicated and, if accepted, its debounce window started.
func (p *Pipeline) Send(text string) {
	p.submit(command{text: text})
}

// Clear resets the state to Done with no items and supersedes any
// in-flight fetch. State reports the reset once Clear returns.
func (p *Pipeline) Clear() {
	p.submit(command{clear: true})
}

// State returns the current view state
func (p *Pipeline) State() domain.ViewState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Subscribe registers handler for every state transition. Handlers run one
// at a time on the event bus goroutine, in the order states were produced.
// The returned function releases the subscription.
func (p *Pipeline) Subscribe(handler func(domain.ViewState)) func() {
	return p.bus.Subscribe(eventbus.EventStateChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.StateChangedEvent); ok {
			handler(ev.State)
		}
	})
}

// Close stops the loop and cancels any in-flight fetch. Send and Clear
// become no-ops afterwards.
func (p *Pipeline) Close() {
	p.cancel()
	p.wg.Wait()
	if p.ownsBus {
		p.bus.Close()
	}
}

func (p *Pipeline) submit(cmd command) {
	cmd.done = make(chan struct{})
	select {
	case p.commands <- cmd:
	case <-p.ctx.Done():
		return
	}
	select {
	case <-cmd.done:
	case <-p.ctx.Done():
	}
}

func (p *Pipeline) run() {
	defer p.wg.Done()
	defer p.shutdown()

	for {
		var fire <-chan time.Time
		if p.timer != nil {
			fire = p.timer.Chan()
		}

		select {
		case <-p.ctx.Done():
			return

		case cmd := <-p.commands:
			if cmd.clear {
				p.handleClear()
			} else {
				p.handleInput(cmd.text)
			}
			close(cmd.done)

		case <-fire:
			p.timer = nil
			p.handleQuiet(p.pending)

		case res := <-p.results:
			p.handleResult(res)
		}
	}
}

// handleInput applies deduplication and (re)starts the debounce window
func (p *Pipeline) handleInput(text string) {
	if text == p.lastAccepted {
		return
	}
	p.lastAccepted = text
	p.publish(eventbus.QueryAcceptedEvent{Query: text})

	if p.timer != nil {
		p.timer.Stop()
	}
	p.pending = text
	p.timer = p.clock.NewTimer(p.debounce)
}

// handleQuiet runs once a value survived its debounce window
func (p *Pipeline) handleQuiet(text string) {
	if uniseg.GraphemeClusterCount(text) < p.minLength {
		return
	}

	p.supersede()
	p.generation++
	gen := p.generation

	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelFetch = cancel
	p.inFlight = text

	p.setState(domain.Loading())
	p.publish(eventbus.SearchStartedEvent{Query: text, Generation: gen})
	log.Printf("Search started for '%s' (generation %d)", text, gen)

	go func() {
		items, err := p.fetcher.Fetch(ctx, text)
		select {
		case p.results <- fetchResult{generation: gen, query: text, items: items, err: err}:
		case <-p.ctx.Done():
		}
	}()
}

// handleResult folds a fetch outcome into state, unless it is stale
func (p *Pipeline) handleResult(res fetchResult) {
	if res.generation != p.generation {
		log.Printf("Discarding stale result for '%s' (generation %d, current %d)", res.query, res.generation, p.generation)
		return
	}
	p.cancelFetch()
	p.cancelFetch = nil
	p.inFlight = ""

	if res.err != nil {
		log.Printf("Search failed for '%s': %v", res.query, res.err)
		p.setState(domain.Failed(res.err))
		p.publish(eventbus.SearchFailedEvent{Query: res.query, Generation: res.generation, Err: res.err})
		return
	}

	log.Printf("Search completed for '%s': found %d items", res.query, len(res.items))
	if len(res.items) == 0 {
		p.setState(domain.Empty())
	} else {
		p.setState(domain.Done(res.items))
	}
	p.publish(eventbus.SearchCompletedEvent{Query: res.query, Generation: res.generation, Count: len(res.items)})
}

func (p *Pipeline) handleClear() {
	p.supersede()
	// Results already in the channel must lose too
	p.generation++
	p.setState(domain.Done(nil))
	p.publish(eventbus.ResultsClearedEvent{})
}

// supersede cancels the in-flight fetch, if any
func (p *Pipeline) supersede() {
	if p.cancelFetch == nil {
		return
	}
	p.cancelFetch()
	p.cancelFetch = nil
	p.publish(eventbus.SearchSupersededEvent{Query: p.inFlight, Generation: p.generation})
	p.inFlight = ""
}

func (p *Pipeline) setState(s domain.ViewState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()

	p.seq++
	p.publish(eventbus.StateChangedEvent{Seq: p.seq, State: s})
}

func (p *Pipeline) publish(e eventbus.DomainEvent) {
	p.bus.Publish(e)
}

func (p *Pipeline) shutdown() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancelFetch != nil {
		p.cancelFetch()
		p.cancelFetch = nil
	}
}
