package widget

import (
	"fmt"
	"time"

	"stockquote/internal/quote"
)

// Phase is where a widget is in its fetch cycle.
type Phase string

// Phases of a fetch cycle. Ready, NotFound, NoData and Failed end a cycle.
const (
	PhaseIdle          Phase = "idle"
	PhaseResolving     Phase = "resolving"
	PhaseFetchingQuote Phase = "fetching_quote"
	PhaseReady         Phase = "ready"
	PhaseNotFound      Phase = "not_found"
	PhaseNoData        Phase = "no_data"
	PhaseFailed        Phase = "failed"
)

// Terminal reports whether a cycle ends in p.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseReady, PhaseNotFound, PhaseNoData, PhaseFailed:
		return true
	}
	return false
}

// State is what a widget displays.
type State struct {
	Symbol    string
	Phase     Phase
	Exchange  quote.ExchangeInfo
	Quote     quote.Snapshot
	Err       error
	UpdatedAt time.Time
}

func defaultState(symbol string, phase Phase) State {
	return State{
		Symbol:   symbol,
		Phase:    phase,
		Exchange: quote.DefaultExchange(),
	}
}

// Card is a State rendered to display strings.
type Card struct {
	ID        string `json:"id,omitempty"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Exchange  string `json:"exchange"`
	Price     string `json:"price"`
	Variation string `json:"variation"`
	Time      string `json:"time"`
	Trend     string `json:"trend"`
	Phase     Phase  `json:"phase"`
	Error     string `json:"error,omitempty"`
}

// Card renders the state. Unknown values show as "--".
func (s State) Card() Card {
	variation := quote.Placeholder
	if s.Quote.Variation.IsSet() {
		variation = s.Quote.Variation.Format(2) + "%"
	}

	trend := "up"
	if s.Quote.Falling() {
		trend = "down"
	}

	c := Card{
		Symbol:    s.Symbol,
		Name:      s.Exchange.Name,
		Exchange:  s.Exchange.Acronym,
		Price:     s.Quote.Price.Format(-1),
		Variation: variation,
		Time:      s.Quote.TimeOrPlaceholder(),
		Trend:     trend,
		Phase:     s.Phase,
	}
	if s.Err != nil {
		c.Error = s.Err.Error()
	}
	return c
}

func (c Card) String() string {
	return fmt.Sprintf("%s %s (%s) $%s %s %s", c.Symbol, c.Name, c.Exchange, c.Price, c.Variation, c.Time)
}
