package quote

import "errors"

// Placeholder is rendered for every value that is not known.
const Placeholder = "--"

const (
	defaultAcronym     = "N/A"
	defaultName        = "N/A"
	unknownTickerName  = "Unknown"
	unknownExchangeAcr = "N/A"
)

var (
	// ErrSymbolNotFound is returned when the ticker listing has no entry for
	// the requested symbol, or is empty.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrNoData is returned when the intraday endpoint has no record in the
	// requested window.
	ErrNoData = errors.New("no quote data")
)

// ExchangeInfo describes where a symbol is listed.
type ExchangeInfo struct {
	Acronym string `json:"acronym"`
	Name    string `json:"name"`
}

// DefaultExchange is shown until a symbol is resolved.
func DefaultExchange() ExchangeInfo {
	return ExchangeInfo{Acronym: defaultAcronym, Name: defaultName}
}

// NewExchangeInfo fills blanks of a matched ticker the way the card shows
// them: an unknown acronym as "N/A" and an unknown name as "Unknown".
func NewExchangeInfo(acronym, name string) ExchangeInfo {
	if acronym == "" {
		acronym = unknownExchangeAcr
	}
	if name == "" {
		name = unknownTickerName
	}
	return ExchangeInfo{Acronym: acronym, Name: name}
}

// Record is one intraday observation as returned by the API.
type Record struct {
	Symbol string  `json:"symbol"`
	Last   float64 `json:"last"`
	Open   float64 `json:"open"`
	Date   string  `json:"date"`
}

// Snapshot is the display-ready quote. The zero value is all placeholders.
type Snapshot struct {
	Price     Number
	Variation Number
	Time      string
}

// TimeOrPlaceholder returns the formatted quote time or "--".
func (s Snapshot) TimeOrPlaceholder() string {
	if s.Time == "" {
		return Placeholder
	}
	return s.Time
}

// Falling reports whether the price went down since the open. An unknown or
// zero variation is not falling.
func (s Snapshot) Falling() bool {
	v, ok := s.Variation.Value()
	return ok && v < 0
}

// IsEmpty reports whether no field of the snapshot is known.
func (s Snapshot) IsEmpty() bool {
	return !s.Price.IsSet() && !s.Variation.IsSet() && s.Time == ""
}
