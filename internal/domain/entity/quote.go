package entity

import (
	"time"
)

// Quote is an ephemeral price snapshot fetched from the market-data
// source. Quotes are never persisted or cached; every lookup is fresh.
type Quote struct {
	Symbol    string    // Uppercase ticker symbol
	Name      string    // Display name reported by the source
	PriceInCents int64  // Most recent trading price in cents
	FetchedAt time.Time // When the quote was fetched
}

// FormattedPrice returns the price as a string with 2 decimal places
func (q *Quote) FormattedPrice() string {
	return CentsToString(q.PriceInCents)
}
