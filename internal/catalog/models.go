package catalog

import (
	"time"
)

// DateLayout is the calendar-date layout used by every event record.
const DateLayout = "2006-01-02"

// TicketTier is one purchasable class of ticket. Name doubles as the
// case-insensitive selection key.
type TicketTier struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type Feature struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Event is a bookable occasion. Events are built once from the seed and never mutated.
type Event struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	LongDescription  string       `json:"long_description"`
	Date             string       `json:"date"`
	Time             string       `json:"time"`
	EndTime          string       `json:"end_time,omitempty"`
	Location         string       `json:"location"`
	Address          string       `json:"address,omitempty"`
	Price            string       `json:"price"`
	Category         string       `json:"category"`
	Image            string       `json:"image"`
	Featured         bool         `json:"featured"`
	TicketTypes      []TicketTier `json:"ticket_types"`
	Features         []Feature    `json:"features"`
	FAQs             []FAQ        `json:"faqs"`
	Organizer        string       `json:"organizer"`
	OrganizerContact string       `json:"organizer_contact,omitempty"`
	CommunityLink    string       `json:"community_link,omitempty"`

	day time.Time
}

// Day returns the event's calendar date at midnight UTC.
func (e *Event) Day() time.Time {
	if !e.day.IsZero() {
		return e.day
	}
	d, _ := time.Parse(DateLayout, e.Date)
	return d
}

// IsPastAt reports whether the event's calendar date is strictly before now's
// calendar date. Time of day is ignored on both sides.
func (e *Event) IsPastAt(now time.Time) bool {
	return e.Day().Before(CalendarDay(now))
}

// FindTier returns the tier whose lower-cased name equals the normalized key.
func (e *Event) FindTier(key string) (TicketTier, bool) {
	key = NormalizeTierKey(key)
	for _, tier := range e.TicketTypes {
		if NormalizeTierKey(tier.Name) == key {
			return tier, true
		}
	}
	return TicketTier{}, false
}

// ListedEvent is an event annotated for the listing page.
type ListedEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	TicketLink  string `json:"ticket_link"`
	DaysLeft    int    `json:"days_left"`
	IsPast      bool   `json:"is_past"`
}

// ListQuery filters the listing endpoint.
type ListQuery struct {
	Category string `form:"category"`
}

// EventDetail is the event page payload.
type EventDetail struct {
	Event   Event   `json:"event"`
	IsPast  bool    `json:"is_past"`
	Related []Event `json:"related"`
}

type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}
