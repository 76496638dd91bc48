package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/malusev998/xrate"
)

type (
	// RateFetcher reads daily rates from an exchangeratesapi.io compatible
	// service. Every rate is expressed against the base currency of that
	// service. It holds no state between calls and is safe for concurrent use.
	RateFetcher struct {
		baseURL   string
		accessKey string
		client    *http.Client
	}

	Option func(*RateFetcher)
)

var _ xrate.Fetcher = (*RateFetcher)(nil)

func WithAccessKey(accessKey string) Option {
	return func(f *RateFetcher) {
		f.accessKey = accessKey
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(f *RateFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// NewRateFetcher stores baseURL as is. Requests go to baseURL followed by
// the date, so it normally ends with a slash.
func NewRateFetcher(baseURL string, opts ...Option) *RateFetcher {
	f := &RateFetcher{
		baseURL: baseURL,
		client:  &http.Client{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *RateFetcher) BaseURL() string {
	return f.baseURL
}

func (f *RateFetcher) URL(year, month, day int) string {
	return f.queryURL(xrate.RateQuery{Year: year, Month: month, Day: day})
}

func (f *RateFetcher) queryURL(q xrate.RateQuery) string {
	return f.baseURL + q.DatePath() + "?access_key=" + url.QueryEscape(f.accessKey)
}

func (f *RateFetcher) FetchRate(ctx context.Context, currencyCode string, year, month, day int) (float64, error) {
	return f.fetch(ctx, xrate.RateQuery{
		Year:     year,
		Month:    month,
		Day:      day,
		Currency: currencyCode,
	})
}

func (f *RateFetcher) CrossRate(ctx context.Context, fromCurrency, toCurrency string, year, month, day int) (float64, error) {
	fromRate, err := f.FetchRate(ctx, fromCurrency, year, month, day)

	if err != nil {
		return 0, err
	}

	toRate, err := f.FetchRate(ctx, toCurrency, year, month, day)

	if err != nil {
		return 0, err
	}

	if toRate == 0 {
		return 0, fmt.Errorf("%w: %s on %d-%02d-%02d", ErrZeroRate, toCurrency, year, month, day)
	}

	return fromRate / toRate, nil
}

func (f *RateFetcher) fetch(ctx context.Context, q xrate.RateQuery) (float64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := newRequest(ctx, f.queryURL(q))

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	res, err := f.client.Do(req)

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return 0, fmt.Errorf("%w: reading response for %s: %v", ErrNetwork, q.DatePath(), err)
	}

	if err := handleHTTPStatusCodeError(res); err != nil {
		return 0, fmt.Errorf("%w: %w: status %d for %s", ErrNetwork, err, res.StatusCode, q.DatePath())
	}

	rate, err := extractRate(body, q.Currency)

	if err != nil {
		return 0, fmt.Errorf("%s on %s: %w", q.Currency, q.DatePath(), err)
	}

	return rate, nil
}
