package marketdata

import (
	"context"

	"github.com/finbharat/finbharat/internal/domain/entity"
)

// QuoteProvider fetches a fresh price for a ticker symbol from an
// external market-data source. Implementations must not cache results
// across calls; every Lookup is a live fetch.
type QuoteProvider interface {
	// Lookup resolves the most recent trading price for a symbol.
	//
	// Possible errors (all match ErrQuoteUnavailable):
	// - ErrTransport: network/HTTP failure, not retried
	// - ErrDataUnavailable: response parsed but missing expected fields
	// - ErrRetriesExhausted: rate limited past the retry budget
	// The blocking retry loop honors ctx cancellation.
	Lookup(ctx context.Context, symbol string) (*entity.Quote, error)
}
