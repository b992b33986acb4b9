// Package pricing turns catalog tiers into amounts. Every function is pure and
// total: malformed input degrades to a zero amount instead of an error.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"plugevents/internal/catalog"
)

const (
	MinQuantity = 1
	MaxQuantity = 10

	// MinorUnitsPerMajor converts naira to kobo at the gateway boundary.
	MinorUnitsPerMajor = 100
)

// ParseAmount extracts a whole-unit amount from a display price such as "₦5,000".
// Every non-digit rune is discarded; no digits, or a value that overflows, yields 0.
func ParseAmount(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	amount, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return amount
}

// UnitPrice returns the price of the tier named by tierKey, or 0 when the event
// or the tier is absent.
func UnitPrice(event *catalog.Event, tierKey string) int64 {
	if event == nil {
		return 0
	}
	tier, ok := event.FindTier(tierKey)
	if !ok {
		return 0
	}
	return ParseAmount(tier.Price)
}

func Total(event *catalog.Event, tierKey string, quantity int) int64 {
	unit := UnitPrice(event, tierKey)
	if quantity <= 0 || unit == 0 {
		return 0
	}
	if unit > math.MaxInt64/int64(quantity) {
		return 0
	}
	return unit * int64(quantity)
}

// ClampQuantity applies delta only when the result stays within
// [MinQuantity, MaxQuantity]; otherwise current is returned unchanged.
func ClampQuantity(current, delta int) int {
	next := current + delta
	if next < MinQuantity || next > MaxQuantity {
		return current
	}
	return next
}

// IsPast reports whether the event's date is strictly before now's calendar date.
func IsPast(event *catalog.Event, now time.Time) bool {
	if event == nil {
		return false
	}
	return event.IsPastAt(now)
}

func ToMinorUnits(amount int64) int64 {
	return amount * MinorUnitsPerMajor
}

// FormatNaira renders an amount the way the website prints prices, e.g. ₦10,000.
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "₦" + b.String()
}
