package xrate

import (
	"fmt"
	"time"
)

// RateQuery identifies the rate of one currency on one calendar day.
type RateQuery struct {
	Year     int
	Month    int
	Day      int
	Currency string
}

func NewRateQuery(currency string, date time.Time) RateQuery {
	return RateQuery{
		Year:     date.Year(),
		Month:    int(date.Month()),
		Day:      date.Day(),
		Currency: currency,
	}
}

// DatePath renders the date the way the rates API expects it in the
// request path: the year as is, month and day padded to two digits.
func (q RateQuery) DatePath() string {
	return fmt.Sprintf("%d-%02d-%02d", q.Year, q.Month, q.Day)
}

func (q RateQuery) Date() time.Time {
	return time.Date(q.Year, time.Month(q.Month), q.Day, 0, 0, 0, 0, time.UTC)
}
