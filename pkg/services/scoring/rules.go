package scoring

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loyalty-tools/receipt-points/pkg/models/domain"
)

var (
	wholeDollar   = decimal.NewFromInt(1)
	quarter       = decimal.RequireFromString("0.25")
	bonusFraction = decimal.RequireFromString("0.2")
)

// retailerNamePoints awards one point per ASCII letter or digit in the
// retailer name; everything else (spaces, punctuation, non-ASCII) is
// dropped before counting.
func retailerNamePoints(r domain.Receipt) int64 {
	var count int64
	for _, c := range r.Retailer {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			count++
		}
	}
	return count
}

// roundDollarPoints awards 50 points when the total has no cents part.
func roundDollarPoints(r domain.Receipt) int64 {
	if r.Total.Mod(wholeDollar).IsZero() {
		return 50
	}
	return 0
}

// quarterMultiplePoints awards 25 points when the total is an exact
// multiple of 0.25. Additive with the round-dollar rule: 35.00 earns both.
func quarterMultiplePoints(r domain.Receipt) int64 {
	if r.Total.Mod(quarter).IsZero() {
		return 25
	}
	return 0
}

// itemPairPoints awards 5 points per full pair of items.
func itemPairPoints(r domain.Receipt) int64 {
	return int64(len(r.Items)/2) * 5
}

// itemDescriptionPoints awards ceil(price * 0.2) for every item whose
// trimmed description length is a multiple of 3. Zero counts as a
// multiple of 3, so a whitespace-only description still qualifies.
func itemDescriptionPoints(r domain.Receipt) int64 {
	var points int64
	for _, item := range r.Items {
		length := len(strings.TrimSpace(item.ShortDescription))
		if length%3 != 0 {
			continue
		}
		points += item.Price.Mul(bonusFraction).Ceil().IntPart()
	}
	return points
}

// oddPurchaseDayPoints awards 6 points when the literal day-of-month of
// the purchase date is odd.
func oddPurchaseDayPoints(r domain.Receipt) int64 {
	if r.PurchaseDate.Day()%2 != 0 {
		return 6
	}
	return 0
}

// afternoonWindowPoints awards 10 points for purchases strictly between
// 14:00 and 16:00. Both boundaries are exclusive: 14:00 and 16:00
// themselves earn nothing.
func afternoonWindowPoints(r domain.Receipt) int64 {
	minutes := r.PurchaseTime.MinutesSinceMidnight()
	if minutes > 14*60 && minutes < 16*60 {
		return 10
	}
	return 0
}
