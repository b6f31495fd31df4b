package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
)

// Defaults for the quote client. The backoff unit is the "1 time unit"
// of the schedule 1, 2, 4, 8, 16.
const (
	DefaultBaseURL        = "https://query1.finance.yahoo.com"
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxAttempts    = 5
	DefaultBackoffUnit    = time.Second
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config holds the quote client settings
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxAttempts    int
	BackoffUnit    time.Duration
}

// YahooClient fetches quotes from the Yahoo Finance v8 chart endpoint.
// The JSON chart contract is the single authoritative data contract;
// quotes are never cached, every Lookup hits the network.
type YahooClient struct {
	baseURL      string
	httpClient   *http.Client
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	maxAttempts  int
	backoffUnit  time.Duration

	// wait is the backoff sleep, swapped out in tests
	wait func(ctx context.Context, d time.Duration) error
}

// NewYahooClient creates a quote client. Zero config fields fall back
// to the defaults above.
func NewYahooClient(cfg Config, timeProvider coreport.TimeProvider, logger coreport.Logger) *YahooClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = DefaultBackoffUnit
	}

	return &YahooClient{
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		logger:       logger,
		timeProvider: timeProvider,
		maxAttempts:  cfg.MaxAttempts,
		backoffUnit:  cfg.BackoffUnit,
		wait:         timeProvider.Sleep,
	}
}

// chartResponse mirrors the fields we consume from the v8 chart payload
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Lookup resolves the most recent trading price for a symbol with up to
// maxAttempts tries. Only a rate-limit response is retried, waiting
// backoffUnit * 2^attempt between tries; any other failure returns
// immediately without consuming the remaining budget.
func (c *YahooClient) Lookup(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = entity.NormalizeSymbol(symbol)
	if !entity.ValidSymbol(symbol) {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidSymbol, symbol)
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		quote, retryable, err := c.fetch(ctx, endpoint, symbol)
		if err == nil {
			return quote, nil
		}
		if !retryable {
			return nil, errs.NewQuoteError(symbol, attempt+1, err)
		}

		backoff := c.backoffUnit << uint(attempt)
		c.logger.Warn("Rate limited by market data source, backing off", map[string]any{
			"symbol":      symbol,
			"attempt":     attempt + 1,
			"max_retries": c.maxAttempts,
			"retry_after": backoff.String(),
		})

		if err := c.wait(ctx, backoff); err != nil {
			return nil, errs.NewQuoteError(symbol, attempt+1, err)
		}
	}

	c.logger.Error("Quote lookup gave up after exhausting retries", map[string]any{
		"symbol":   symbol,
		"attempts": c.maxAttempts,
	})
	return nil, errs.NewQuoteError(symbol, c.maxAttempts, errs.ErrRetriesExhausted)
}

// fetch performs one request. retryable is true only for a rate-limit
// response.
func (c *YahooClient) fetch(ctx context.Context, endpoint, symbol string) (quote *entity.Quote, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", errs.ErrTransport, err.Error())
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", errs.ErrTransport, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, errs.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: unexpected status %d", errs.ErrTransport, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("%w: %s", errs.ErrDataUnavailable, err.Error())
	}

	if payload.Chart.Error != nil {
		return nil, false, fmt.Errorf("%w: %s", errs.ErrDataUnavailable, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, false, fmt.Errorf("%w: empty result", errs.ErrDataUnavailable)
	}

	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil {
		return nil, false, fmt.Errorf("%w: no regular market price", errs.ErrDataUnavailable)
	}

	priceInCents, err := entity.PriceToCents(*meta.RegularMarketPrice)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", errs.ErrDataUnavailable, err.Error())
	}

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	return &entity.Quote{
		Symbol:       symbol,
		Name:         name,
		PriceInCents: priceInCents,
		FetchedAt:    c.timeProvider.Now(),
	}, false, nil
}
