package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is a validated purchase record. PurchaseDate is a bare calendar
// date and PurchaseTime a bare clock reading; neither carries a timezone,
// so day-of-month and time-window checks read the literal components the
// customer saw on the receipt.
type Receipt struct {
	Retailer     string
	PurchaseDate time.Time
	PurchaseTime ClockTime
	Items        []Item
	Total        decimal.Decimal
}

type Item struct {
	ShortDescription string
	Price            decimal.Decimal
}

// ClockTime is a 24-hour wall-clock reading with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// MinutesSinceMidnight flattens the reading for window comparisons.
func (c ClockTime) MinutesSinceMidnight() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
