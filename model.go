package xrate

import "time"

type (
	// Rate is a single observation of a currency against the base currency
	// on one calendar day.
	Rate struct {
		Currency  string
		Base      string
		Date      time.Time
		Value     float64
		CreatedAt time.Time
	}

	RateWithID struct {
		Rate
		ID interface{}
	}
)
