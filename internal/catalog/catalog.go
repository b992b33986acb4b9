package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
)

const (
	DefaultRelatedLimit  = 2
	DefaultFeaturedLimit = 3
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

// Catalog is a read-only, ordered collection of events. The zero value is an empty catalog.
type Catalog struct {
	events []Event
	index  map[string]int
}

// New validates the given events and builds an immutable catalog preserving their order.
func New(events []Event) (*Catalog, error) {
	c := &Catalog{
		events: make([]Event, 0, len(events)),
		index:  make(map[string]int, len(events)),
	}

	for i, e := range events {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("event #%d (%q): %w", i, e.ID, err)
		}
		if _, dup := c.index[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidEvent, e.ID)
		}

		e.day, _ = time.Parse(DateLayout, e.Date)
		e.TicketTypes = append([]TicketTier(nil), e.TicketTypes...)
		e.Features = append([]Feature(nil), e.Features...)
		e.FAQs = append([]FAQ(nil), e.FAQs...)

		c.index[e.ID] = len(c.events)
		c.events = append(c.events, e)
	}

	return c, nil
}

// MustNew is New for static seeds; it panics on invalid data.
func MustNew(events []Event) *Catalog {
	c, err := New(events)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(e Event) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEvent)
	}
	if len(e.TicketTypes) == 0 {
		return fmt.Errorf("%w: no ticket types", ErrInvalidEvent)
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date %q: %v", ErrInvalidEvent, e.Date, err)
	}
	for _, tier := range e.TicketTypes {
		if !strings.ContainsFunc(tier.Price, unicode.IsDigit) {
			return fmt.Errorf("%w: tier %q price %q has no digits", ErrInvalidEvent, tier.Name, tier.Price)
		}
	}
	return nil
}

// Len returns the number of events.
func (c *Catalog) Len() int {
	return len(c.events)
}

// All returns a copy of every event in declaration order.
func (c *Catalog) All() []Event {
	return append([]Event(nil), c.events...)
}

// FindByID returns the event with the given id or ErrEventNotFound.
func (c *Catalog) FindByID(id string) (*Event, error) {
	if i, ok := c.index[id]; ok && id != "" {
		e := c.events[i]
		return &e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrEventNotFound, id)
}

// ListRelated returns up to limit events other than event, in catalog order.
func (c *Catalog) ListRelated(event *Event, limit int) []Event {
	if event == nil || limit <= 0 {
		return []Event{}
	}

	related := make([]Event, 0, limit)
	for _, e := range c.events {
		if len(related) == limit {
			break
		}
		if e.ID == event.ID {
			continue
		}
		related = append(related, e)
	}
	return related
}

// ListFeatured returns up to limit featured events in catalog order. When fewer
// than limit are featured the remaining slots are filled with non-featured
// events, again in catalog order.
func (c *Catalog) ListFeatured(limit int) []Event {
	if limit <= 0 {
		return []Event{}
	}

	featured := make([]Event, 0, limit)
	for _, e := range c.events {
		if len(featured) == limit {
			return featured
		}
		if e.Featured {
			featured = append(featured, e)
		}
	}
	for _, e := range c.events {
		if len(featured) == limit {
			break
		}
		if !e.Featured {
			featured = append(featured, e)
		}
	}
	return featured
}

// ListByDate returns the listing view: events sorted by date ascending (ties keep
// catalog order), optionally restricted to one category, annotated relative to now.
func (c *Catalog) ListByDate(now time.Time, query ListQuery) []ListedEvent {
	category := strings.TrimSpace(query.Category)

	selected := make([]Event, 0, len(c.events))
	for _, e := range c.events {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		selected = append(selected, e)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Day().Before(selected[j].Day())
	})

	today := CalendarDay(now)
	listed := make([]ListedEvent, 0, len(selected))
	for _, e := range selected {
		days := daysBetween(today, e.Day())
		listed = append(listed, ListedEvent{
			ID:          e.ID,
			Title:       e.Title,
			Date:        e.Date,
			Time:        e.Time,
			Location:    e.Location,
			Image:       e.Image,
			Category:    e.Category,
			Price:       e.Price,
			Description: e.Description,
			TicketLink:  "/tickets/" + e.ID,
			DaysLeft:    days,
			IsPast:      days < 0,
		})
	}
	return listed
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, e := range c.events {
		key := strings.ToLower(e.Category)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories
}

// NormalizeTierKey turns a tier name or user-supplied key into the selection key.
func NormalizeTierKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CalendarDay maps t to midnight UTC of its own local calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
