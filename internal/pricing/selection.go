package pricing

import (
	"time"

	"plugevents/internal/catalog"
)

// DefaultTierKey is the tier every new or reset selection starts on.
const DefaultTierKey = "standard"

// Selection is the viewer's current tier and quantity choice.
type Selection struct {
	TierKey  string `json:"tier_key"`
	Quantity int    `json:"quantity"`
}

func DefaultSelection() Selection {
	return Selection{TierKey: DefaultTierKey, Quantity: MinQuantity}
}

// Quote is the priced view of a selection that drives the booking controls.
type Quote struct {
	TierKey      string `json:"tier_key"`
	UnitPrice    int64  `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	Total        int64  `json:"total"`
	CanIncrement bool   `json:"can_increment"`
	CanDecrement bool   `json:"can_decrement"`
	Bookable     bool   `json:"bookable"`
}

func NewQuote(event *catalog.Event, sel Selection, now time.Time) Quote {
	past := event == nil || IsPast(event, now)
	return Quote{
		TierKey:      sel.TierKey,
		UnitPrice:    UnitPrice(event, sel.TierKey),
		Quantity:     sel.Quantity,
		Total:        Total(event, sel.TierKey, sel.Quantity),
		CanIncrement: !past && sel.Quantity < MaxQuantity,
		CanDecrement: !past && sel.Quantity > MinQuantity,
		Bookable:     !past,
	}
}
