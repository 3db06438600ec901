// Package autocomplete implements the debounced city-search flow behind one
// logical search box: keystrokes are debounced, short queries never reach
// the network, and only the most recently issued request's result is ever
// applied (stale-response suppression).
package autocomplete

import (
	"context"
	"sync"
	"time"

	"github.com/weatheria/weatheria/internal/weather"
)

const (
	defaultDebounce = 300 * time.Millisecond

	// minQueryLen gates the network: shorter queries clear the list instead.
	minQueryLen = 3
)

// State is the controller's position in the search-box lifecycle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateFetching
	StateSettled
	StateError
)

// SearchFunc issues one city-search request.
type SearchFunc func(ctx context.Context, query string) ([]weather.CitySuggestion, error)

// SelectFunc is the downstream search action, invoked identically for a
// picked suggestion and a manual submission.
type SelectFunc func(city string)

// Timer is the handle of a pending debounce callback.
type Timer interface {
	Stop() bool
}

// Clock schedules the debounce callback. The real implementation delegates
// to time.AfterFunc; tests inject a logical clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Controller owns the state of one search box.
type Controller struct {
	search   SearchFunc
	onSelect SelectFunc
	clock    Clock
	debounce time.Duration

	mu          sync.Mutex
	timer       Timer
	gen         uint64
	query       string
	state       State
	suggestions []weather.CitySuggestion
	err         error
}

// NewController constructs a Controller with the 300ms debounce window and
// the wall clock.
func NewController(search SearchFunc, onSelect SelectFunc) *Controller {
	return NewControllerWithClock(search, onSelect, realClock{}, defaultDebounce)
}

// NewControllerWithClock constructs a Controller with an injected clock and
// debounce window (for tests).
func NewControllerWithClock(search SearchFunc, onSelect SelectFunc, clock Clock, debounce time.Duration) *Controller {
	return &Controller{
		search:   search,
		onSelect: onSelect,
		clock:    clock,
		debounce: debounce,
		state:    StateIdle,
	}
}

// Input records a keystroke. Each call resets the debounce timer; the
// city-search request is issued only after the window passes with no
// further input. Queries shorter than the minimum clear the suggestion
// list immediately and never reach the network.
func (c *Controller) Input(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.stopTimer()

	if len(query) < minQueryLen {
		c.gen++ // any in-flight result is now stale
		c.suggestions = nil
		c.err = nil
		c.state = StateIdle
		return
	}

	c.state = StateDebouncing
	c.timer = c.clock.AfterFunc(c.debounce, func() { c.fire(query) })
}

// fire issues the request for the query the timer was armed with.
// It runs on the timer's goroutine.
func (c *Controller) fire(query string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateFetching
	c.mu.Unlock()

	suggestions, err := c.search(context.Background(), query)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Latest request wins. A result that lost the race is dropped without
	// touching visible state.
	if gen != c.gen {
		return
	}

	if err != nil {
		c.suggestions = nil
		c.err = err
		c.state = StateError
		return
	}

	c.suggestions = suggestions
	c.err = nil
	c.state = StateSettled
}

// Select picks a suggestion: the list clears, the search field takes the
// city name, and the downstream search action runs.
func (c *Controller) Select(s weather.CitySuggestion) {
	c.mu.Lock()
	c.stopTimer()
	c.gen++
	c.query = s.Name
	c.suggestions = nil
	c.err = nil
	c.state = StateIdle
	c.mu.Unlock()

	if c.onSelect != nil {
		c.onSelect(s.Name)
	}
}

// Submit performs a manual submission of the current field value, clearing
// the field and the list exactly like a suggestion pick.
func (c *Controller) Submit() {
	c.mu.Lock()
	c.stopTimer()
	c.gen++
	city := c.query
	c.query = ""
	c.suggestions = nil
	c.err = nil
	c.state = StateIdle
	c.mu.Unlock()

	if city != "" && c.onSelect != nil {
		c.onSelect(city)
	}
}

// stopTimer cancels any pending debounce callback. Callers hold c.mu.
func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Query returns the current search field value.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Suggestions returns a copy of the currently visible suggestion list.
func (c *Controller) Suggestions() []weather.CitySuggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]weather.CitySuggestion, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

// Err returns the last search error, if the controller is in StateError.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
