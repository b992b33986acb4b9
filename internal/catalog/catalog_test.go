package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureEvents() []Event {
	return []Event{
		{ID: "a", Title: "A", Date: "2030-03-01", Category: "Concert", Featured: false, TicketTypes: []TicketTier{{Name: "Standard", Price: "₦1,000"}}},
		{ID: "b", Title: "B", Date: "2030-01-01", Category: "Cultural", Featured: true, TicketTypes: []TicketTier{{Name: "Standard", Price: "#0"}}},
		{ID: "c", Title: "C", Date: "2030-01-01", Category: "concert", Featured: false, TicketTypes: []TicketTier{{Name: "Standard", Price: "₦2,000"}}},
		{ID: "d", Title: "D", Date: "2020-01-01", Category: "Community", Featured: true, TicketTypes: []TicketTier{{Name: "VIP", Price: "₦5,000"}}},
	}
}

func TestNew_RejectsInvalidEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"empty id", []Event{{ID: " ", Date: "2030-01-01", TicketTypes: []TicketTier{{Name: "S", Price: "1"}}}}},
		{"no tiers", []Event{{ID: "x", Date: "2030-01-01"}}},
		{"bad date", []Event{{ID: "x", Date: "13/04/2025", TicketTypes: []TicketTier{{Name: "S", Price: "1"}}}}},
		{"priceless tier", []Event{{ID: "x", Date: "2030-01-01", TicketTypes: []TicketTier{{Name: "S", Price: "free"}}}}},
		{"duplicate id", []Event{
			{ID: "x", Date: "2030-01-01", TicketTypes: []TicketTier{{Name: "S", Price: "1"}}},
			{ID: "x", Date: "2030-01-02", TicketTypes: []TicketTier{{Name: "S", Price: "1"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.events)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestSeed_IsValid(t *testing.T) {
	c, err := New(Seed())
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
}

func TestFindByID(t *testing.T) {
	c := MustNew(Seed())

	for _, e := range Seed() {
		found, err := c.FindByID(e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, found.ID)
		assert.Equal(t, e.Title, found.Title)
		assert.Equal(t, e.TicketTypes, found.TicketTypes)
	}

	_, err := c.FindByID("does-not-exist")
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = c.FindByID("")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestNew_CopiesInput(t *testing.T) {
	events := fixtureEvents()
	c := MustNew(events)

	events[0].Title = "mutated"
	events[0].TicketTypes[0].Price = "₦9"

	found, err := c.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, "A", found.Title)
	assert.Equal(t, "₦1,000", found.TicketTypes[0].Price)
}

func TestListRelated(t *testing.T) {
	c := MustNew(fixtureEvents())

	for _, e := range fixtureEvents() {
		e := e
		related := c.ListRelated(&e, DefaultRelatedLimit)
		assert.Len(t, related, 2)
		for _, r := range related {
			assert.NotEqual(t, e.ID, r.ID)
		}
	}

	b, _ := c.FindByID("b")
	related := c.ListRelated(b, 2)
	assert.Equal(t, []string{"a", "c"}, ids(related))

	assert.Len(t, c.ListRelated(b, 10), 3)
	assert.Empty(t, c.ListRelated(nil, 2))

	single := MustNew(fixtureEvents()[:1])
	only, _ := single.FindByID("a")
	assert.Empty(t, single.ListRelated(only, 2))
}

func TestListFeatured(t *testing.T) {
	c := MustNew(fixtureEvents())

	assert.Equal(t, []string{"b", "d"}, ids(c.ListFeatured(2)))
	assert.Equal(t, []string{"b", "d", "a"}, ids(c.ListFeatured(3)))
	assert.Equal(t, []string{"b"}, ids(c.ListFeatured(1)))
	assert.Len(t, c.ListFeatured(10), 4)
	assert.Empty(t, c.ListFeatured(0))
}

func TestListFeatured_NoneFlagged(t *testing.T) {
	events := fixtureEvents()
	for i := range events {
		events[i].Featured = false
	}
	c := MustNew(events)

	assert.Equal(t, []string{"a", "b", "c"}, ids(c.ListFeatured(3)))
}

func TestListByDate(t *testing.T) {
	c := MustNew(fixtureEvents())
	now := time.Date(2029, 12, 30, 23, 59, 0, 0, time.UTC)

	listed := c.ListByDate(now, ListQuery{})
	require.Len(t, listed, 4)

	got := make([]string, 0, len(listed))
	for _, l := range listed {
		got = append(got, l.ID)
	}
	assert.Equal(t, []string{"d", "b", "c", "a"}, got)

	assert.True(t, listed[0].IsPast)
	assert.Equal(t, 2, listed[1].DaysLeft)
	assert.False(t, listed[1].IsPast)
	assert.Equal(t, "/tickets/b", listed[1].TicketLink)
}

func TestListByDate_CategoryFilter(t *testing.T) {
	c := MustNew(fixtureEvents())

	listed := c.ListByDate(time.Now(), ListQuery{Category: "CONCERT"})
	require.Len(t, listed, 2)
	assert.Equal(t, "c", listed[0].ID)
	assert.Equal(t, "a", listed[1].ID)
}

func TestCategories(t *testing.T) {
	c := MustNew(fixtureEvents())
	assert.Equal(t, []string{"Concert", "Cultural", "Community"}, c.Categories())
}

func TestEvent_IsPastAt(t *testing.T) {
	past := Event{Date: "2020-01-01"}
	future := Event{Date: "2030-01-01"}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, past.IsPastAt(now))
	assert.False(t, future.IsPastAt(now))

	sameDay := Event{Date: "2025-01-01"}
	assert.False(t, sameDay.IsPastAt(time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC)))
	assert.True(t, sameDay.IsPastAt(time.Date(2025, 1, 2, 0, 0, 1, 0, time.UTC)))
}

func TestEvent_FindTier(t *testing.T) {
	c := MustNew(Seed())
	e, _ := c.FindByID("igbo-amaka-festival")

	tier, ok := e.FindTier("vip")
	require.True(t, ok)
	assert.Equal(t, "₦5,000", tier.Price)

	_, ok = e.FindTier(" VIP ")
	assert.True(t, ok)

	_, ok = e.FindTier("backstage")
	assert.False(t, ok)
}

func ids(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}
