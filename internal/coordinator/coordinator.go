package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"stockquote/internal/widget"
)

// ErrWidgetNotFound is returned for an unknown widget id.
var ErrWidgetNotFound = errors.New("widget not found")

// Widget is one mounted widget: an id, the symbol it was mounted with and
// the controller that owns its state.
type Widget struct {
	ID         string
	Symbol     string
	Controller *widget.Controller
}

// Result is the state of a widget once its first cycle has settled.
type Result struct {
	ID    string
	State widget.State
}

// Coordinator hosts widgets and runs their fetch cycles concurrently
type Coordinator struct {
	widgets []Widget
	byID    map[string]*widget.Controller
	out     io.Writer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithOutput sets where Run prints cards. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Coordinator) {
		c.out = w
	}
}

// New creates a new Coordinator with the given widgets
func New(widgets []Widget, opts ...Option) *Coordinator {
	c := &Coordinator{
		widgets: widgets,
		byID:    make(map[string]*widget.Controller, len(widgets)),
		out:     os.Stdout,
	}
	for _, w := range widgets {
		c.byID[w.ID] = w.Controller
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes every widget's first cycle concurrently and prints results
// as they arrive in the format:
//   - Settled: "ID: SYMBOL NAME (EXCHANGE) $PRICE VAR TIME"
//   - Failed:  "ID: ERROR - error message"
func (c *Coordinator) Run(ctx context.Context) error {
	if len(c.widgets) == 0 {
		return fmt.Errorf("no widgets configured")
	}

	resultChan := make(chan Result, len(c.widgets))

	var wg sync.WaitGroup
	for _, w := range c.widgets {
		wg.Add(1)
		go func(w Widget) {
			defer wg.Done()
			resultChan <- Result{
				ID:    w.ID,
				State: w.Controller.Sync(ctx, w.Symbol),
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		if result.State.Err != nil {
			fmt.Fprintf(c.out, "%s: ERROR - %v\n", result.ID, result.State.Err)
		} else {
			fmt.Fprintf(c.out, "%s: %s\n", result.ID, result.State.Card())
		}
	}

	return nil
}

// Card returns the rendered card of widget id.
func (c *Coordinator) Card(id string) (widget.Card, bool) {
	ctrl, ok := c.byID[id]
	if !ok {
		return widget.Card{}, false
	}
	card := ctrl.State().Card()
	card.ID = id
	return card, true
}

// Cards returns every widget's card in mount order.
func (c *Coordinator) Cards() []widget.Card {
	cards := make([]widget.Card, 0, len(c.widgets))
	for _, w := range c.widgets {
		card, _ := c.Card(w.ID)
		cards = append(cards, card)
	}
	return cards
}

// Remount points widget id at symbol. A cycle starts in the background
// only if the symbol differs from the current one; started reports that.
func (c *Coordinator) Remount(ctx context.Context, id, symbol string) (started bool, err error) {
	ctrl, ok := c.byID[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	return ctrl.SetSymbol(ctx, symbol), nil
}

// Wait blocks until background cycles of every widget have returned.
func (c *Coordinator) Wait() {
	for _, w := range c.widgets {
		w.Controller.Wait()
	}
}
