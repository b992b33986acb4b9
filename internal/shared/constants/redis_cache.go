package constants

import (
	"fmt"
	"strings"
	"time"
)

// Redis keys follow plugevents:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "plugevents"
)

// ================== CATALOG ==================

const (
	CACHE_KEY_EVENTS_LIST       = CACHE_PREFIX + ":events:list"     // + :day:X:category:Y
	CACHE_KEY_EVENTS_FEATURED   = CACHE_PREFIX + ":events:featured" // + :limit:X
	CACHE_KEY_EVENTS_CATEGORIES = CACHE_PREFIX + ":events:categories"

	PATTERN_INVALIDATE_EVENT_ALL = CACHE_PREFIX + ":events:*"
)

const (
	TTL_EVENT_LIST       = 15 * time.Minute // listing carries days-left
	TTL_EVENT_FEATURED   = 24 * time.Hour   // catalog data only changes on deploy
	TTL_EVENT_CATEGORIES = 24 * time.Hour
)

// ================== PURCHASE SESSIONS ==================

const CACHE_KEY_SESSIONS = CACHE_PREFIX + ":sessions" // + :id:X or :reference:Y

// ================== RECEIPTS ==================

// KEY_RECEIPTS holds the whole userTickets collection as one JSON document.
const KEY_RECEIPTS = CACHE_PREFIX + ":userTickets"

// ================== RATE LIMITING ==================

const KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit" // + :ip:type

func BuildEventListKey(day, category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s:day:%s:category:%s", CACHE_KEY_EVENTS_LIST, day, strings.ToLower(category))
}

func BuildFeaturedKey(limit int) string {
	return fmt.Sprintf("%s:limit:%d", CACHE_KEY_EVENTS_FEATURED, limit)
}

func BuildSessionKey(sessionID string) string {
	return CACHE_KEY_SESSIONS + ":id:" + sessionID
}

func BuildSessionReferenceKey(reference string) string {
	return CACHE_KEY_SESSIONS + ":reference:" + reference
}

func BuildRateLimitKey(ip, limitType string) string {
	return fmt.Sprintf("%s:%s:%s", KEY_RATE_LIMIT, ip, limitType)
}
