package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const ExchangeRatesAPIURL = "https://api.exchangeratesapi.io/"

var (
	ErrNetwork       = errors.New("network error")
	ErrParse         = errors.New("parse error")
	ErrFieldNotFound = errors.New("field not found")
	ErrZeroRate      = errors.New("rate of the target currency is zero")

	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

func newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}

func handleHTTPStatusCodeError(res *http.Response) error {
	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	switch {
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}

// extractRate reads body as {"rates": {"<code>": <number>}} and returns the
// number stored under currencyCode.
func extractRate(body []byte, currencyCode string) (float64, error) {
	var document map[string]json.RawMessage

	if err := json.Unmarshal(body, &document); err != nil {
		return 0, fmt.Errorf("%w: response is not a JSON object: %v", ErrParse, err)
	}

	// "null" decodes into a nil map without an error
	if document == nil {
		return 0, fmt.Errorf("%w: response is not a JSON object", ErrParse)
	}

	rawRates, ok := document["rates"]

	if !ok {
		return 0, fmt.Errorf("%w: rates", ErrFieldNotFound)
	}

	var rates map[string]json.RawMessage

	if err := json.Unmarshal(rawRates, &rates); err != nil || rates == nil {
		return 0, fmt.Errorf("%w: rates is not an object", ErrFieldNotFound)
	}

	rawRate, ok := rates[currencyCode]

	if !ok {
		return 0, fmt.Errorf("%w: rates.%s", ErrFieldNotFound, currencyCode)
	}

	var number json.Number

	if err := json.Unmarshal(rawRate, &number); err != nil {
		return 0, fmt.Errorf("%w: rates.%s is not a number: %v", ErrParse, currencyCode, err)
	}

	rate, err := strconv.ParseFloat(number.String(), 64)

	if err != nil {
		return 0, fmt.Errorf("%w: rates.%s is not a number: %v", ErrParse, currencyCode, err)
	}

	return rate, nil
}
