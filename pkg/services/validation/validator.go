// Package validation enforces the receipt schema before scoring: required
// fields, markup-free text, literal date/time formats, and non-negative
// decimal amounts. The engine only ever sees receipts that passed here.
package validation

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"github.com/loyalty-tools/receipt-points/pkg/models/api"
	"github.com/loyalty-tools/receipt-points/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// timePattern matches zero-padded 24-hour HH:MM readings.
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Error reports which field failed validation and why.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid receipt data: %s %s", e.Field, e.Reason)
}

type Validator struct {
	policy *bluemonday.Policy
}

func NewValidator() *Validator {
	return &Validator{policy: bluemonday.StrictPolicy()}
}

// Validate checks the wire receipt against the schema and converts it
// into the immutable domain form.
func (v *Validator) Validate(raw api.Receipt) (domain.Receipt, error) {
	if raw.Retailer == "" {
		return domain.Receipt{}, &Error{Field: "retailer", Reason: "is required"}
	}
	if !v.markupFree(raw.Retailer) {
		return domain.Receipt{}, &Error{Field: "retailer", Reason: "must not contain markup"}
	}

	purchaseDate, err := time.Parse(dateLayout, raw.PurchaseDate)
	if err != nil {
		return domain.Receipt{}, &Error{Field: "purchaseDate", Reason: "must be a valid YYYY-MM-DD date"}
	}

	purchaseTime, err := parseClockTime(raw.PurchaseTime)
	if err != nil {
		return domain.Receipt{}, &Error{Field: "purchaseTime", Reason: "must be a valid 24-hour HH:MM time"}
	}

	total, err := parseAmount(raw.Total)
	if err != nil {
		return domain.Receipt{}, &Error{Field: "total", Reason: err.Error()}
	}

	if len(raw.Items) == 0 {
		return domain.Receipt{}, &Error{Field: "items", Reason: "must contain at least one item"}
	}

	items := make([]domain.Item, 0, len(raw.Items))
	for i, item := range raw.Items {
		if item.ShortDescription == "" {
			return domain.Receipt{}, &Error{
				Field:  fmt.Sprintf("items[%d].shortDescription", i),
				Reason: "is required",
			}
		}
		if !v.markupFree(item.ShortDescription) {
			return domain.Receipt{}, &Error{
				Field:  fmt.Sprintf("items[%d].shortDescription", i),
				Reason: "must not contain markup",
			}
		}
		price, err := parseAmount(item.Price)
		if err != nil {
			return domain.Receipt{}, &Error{
				Field:  fmt.Sprintf("items[%d].price", i),
				Reason: err.Error(),
			}
		}
		items = append(items, domain.Item{ShortDescription: item.ShortDescription, Price: price})
	}

	return domain.Receipt{
		Retailer:     raw.Retailer,
		PurchaseDate: purchaseDate,
		PurchaseTime: purchaseTime,
		Items:        items,
		Total:        total,
	}, nil
}

// markupFree reports whether sanitizing the value leaves it unchanged.
// Sanitization escapes bare entities, so the output is unescaped before
// comparing; "M&M Corner Market" stays legal while any tag content does
// not survive the round trip.
func (v *Validator) markupFree(value string) bool {
	return html.UnescapeString(v.policy.Sanitize(value)) == value
}

func parseClockTime(value string) (domain.ClockTime, error) {
	if !timePattern.MatchString(value) {
		return domain.ClockTime{}, fmt.Errorf("malformed time %q", value)
	}

	hour, _ := strconv.Atoi(value[:2])
	minute, _ := strconv.Atoi(value[3:])
	return domain.ClockTime{Hour: hour, Minute: minute}, nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("is required")
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("must be a valid decimal amount")
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("must not be negative")
	}
	return amount, nil
}
