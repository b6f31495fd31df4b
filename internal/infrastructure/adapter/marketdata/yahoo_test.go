package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/logger"
	timeprovider "github.com/finbharat/finbharat/internal/infrastructure/adapter/time"
)

const chartBody = `{
	"chart": {
		"result": [{
			"meta": {
				"symbol": "NFLX",
				"longName": "Netflix, Inc.",
				"shortName": "Netflix",
				"regularMarketPrice": 123.45
			}
		}],
		"error": null
	}
}`

// newTestClient wires a client at the test server's URL and replaces the
// backoff sleep with one that records the requested durations instead of
// waiting.
func newTestClient(serverURL string, waits *[]time.Duration) *YahooClient {
	client := NewYahooClient(Config{
		BaseURL:     serverURL,
		MaxAttempts: 5,
		BackoffUnit: time.Second,
	}, timeprovider.NewRealTimeProvider(), logger.NewNoopLogger())
	client.wait = func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return client
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful lookup parses the chart payload", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			assert.Equal(t, "/v8/finance/chart/NFLX", r.URL.Path)
			assert.Equal(t, "1d", r.URL.Query().Get("interval"))
			w.Write([]byte(chartBody))
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		quote, err := client.Lookup(ctx, " nflx ")

		require.NoError(t, err)
		assert.Equal(t, "NFLX", quote.Symbol)
		assert.Equal(t, "Netflix, Inc.", quote.Name)
		assert.Equal(t, int64(12345), quote.PriceInCents)
		assert.False(t, quote.FetchedAt.IsZero())
		assert.Equal(t, int32(1), requests.Load())
		assert.Empty(t, waits)
	})

	t.Run("Short name is used when the long name is absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"NFLX","shortName":"Netflix","regularMarketPrice":10}}],"error":null}}`))
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		quote, err := client.Lookup(ctx, "NFLX")

		require.NoError(t, err)
		assert.Equal(t, "Netflix", quote.Name)
	})

	t.Run("Rate limiting retries with doubling backoff", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requests.Add(1) <= 3 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(chartBody))
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		quote, err := client.Lookup(ctx, "NFLX")

		require.NoError(t, err)
		assert.Equal(t, int64(12345), quote.PriceInCents)
		assert.Equal(t, int32(4), requests.Load())
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, waits)
	})

	t.Run("Persistent rate limiting exhausts all five attempts", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		quote, err := client.Lookup(ctx, "NFLX")

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, errs.ErrQuoteUnavailable)
		assert.ErrorIs(t, err, errs.ErrRetriesExhausted)
		assert.Equal(t, int32(5), requests.Load())
		// The full schedule runs, including the wait after the last attempt
		assert.Equal(t, []time.Duration{
			1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second,
		}, waits)

		var quoteErr *errs.QuoteError
		require.ErrorAs(t, err, &quoteErr)
		assert.Equal(t, "NFLX", quoteErr.Symbol)
		assert.Equal(t, 5, quoteErr.Attempts)
	})

	t.Run("Server errors fail fast without retrying", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		quote, err := client.Lookup(ctx, "NFLX")

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, errs.ErrTransport)
		assert.Equal(t, int32(1), requests.Load())
		assert.Empty(t, waits)
	})

	t.Run("Unknown symbol reported by the source", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		quote, err := client.Lookup(ctx, "NOSUCH")

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})

	t.Run("Payload without a market price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"NFLX"}}],"error":null}}`))
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		_, err := client.Lookup(ctx, "NFLX")

		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})

	t.Run("Malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		_, err := client.Lookup(ctx, "NFLX")

		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
		assert.Empty(t, waits)
	})

	t.Run("Invalid symbol is rejected before any request", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
		}))
		defer server.Close()

		var waits []time.Duration
		client := newTestClient(server.URL, &waits)

		_, err := client.Lookup(ctx, "not a symbol!")

		assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
		assert.Equal(t, int32(0), requests.Load())
	})

	t.Run("Canceled context aborts the backoff wait", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		cancelCtx, cancel := context.WithCancel(context.Background())
		client := NewYahooClient(Config{
			BaseURL:     server.URL,
			MaxAttempts: 5,
			BackoffUnit: time.Second,
		}, timeprovider.NewRealTimeProvider(), logger.NewNoopLogger())
		client.wait = func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}

		_, err := client.Lookup(cancelCtx, "NFLX")

		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errs.ErrQuoteUnavailable)
	})
}

func TestNewYahooClientDefaults(t *testing.T) {
	client := NewYahooClient(Config{}, timeprovider.NewRealTimeProvider(), logger.NewNoopLogger())

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultMaxAttempts, client.maxAttempts)
	assert.Equal(t, DefaultBackoffUnit, client.backoffUnit)
	assert.Equal(t, DefaultRequestTimeout, client.httpClient.Timeout)
}
