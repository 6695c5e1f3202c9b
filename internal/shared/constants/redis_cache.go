package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis keys and TTL values for the TourFlo application
// Pattern: tourflo:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_SHORT = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for experience details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for experience listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for featured experiences
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for user bookings
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for slot availability
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_MEDIUM = 1 * time.Minute // 1 minute - for waitlist positions
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "tourflo"
)

// ================== EXPERIENCES MODULE ==================

const (
	CACHE_KEY_EXPERIENCES_LIST     = CACHE_PREFIX + ":experiences:list"         // + :page:X:limit:Y
	CACHE_KEY_EXPERIENCES_FEATURED = CACHE_PREFIX + ":experiences:featured"     //
	CACHE_KEY_EXPERIENCE_DETAIL    = CACHE_PREFIX + ":experiences:detail:uuid:" // + experience-id
)

const (
	TTL_EXPERIENCE_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_EXPERIENCE_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// ================== SLOTS MODULE ==================

const (
	CACHE_KEY_SLOTS_BY_EXPERIENCE = CACHE_PREFIX + ":slots:experience:uuid:" // + experience-id:date:YYYY-MM-DD
	CACHE_KEY_SLOT_DETAIL         = CACHE_PREFIX + ":slots:detail:uuid:"     // + slot-id
)

const (
	TTL_SLOT_AVAILABILITY = TTL_DYNAMIC_SHORT
)

// ================== CHECKOUT MODULE ==================

const (
	// Checkout sessions are ephemeral; the key holds the serialized flow state
	KEY_CHECKOUT_SESSION = CACHE_PREFIX + ":checkout:session:" // + session-id
)

// ================== PREFS MODULE ==================

const (
	// Per-user preference flags. Field names inside the hash are the
	// wire-stable flag names: visited, onboarded, has_swiped, currency.
	KEY_USER_PREFS = CACHE_PREFIX + ":prefs:user:" // + user-id
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM
)

// ================== WAITLIST MODULE ==================

const (
	KEY_WAITLIST_QUEUE          = CACHE_PREFIX + ":waitlist:queue:slot:"    // + slot-id
	CACHE_KEY_WAITLIST_POSITION = CACHE_PREFIX + ":waitlist:position:slot:" // + slot-id:user:user-id
)

const (
	TTL_WAITLIST_POSITION = TTL_REALTIME_MEDIUM
)

// ================== HELPER FUNCTIONS ==================

func BuildExperienceListKey(page, limit int) string {
	return CACHE_KEY_EXPERIENCES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildExperienceDetailKey(experienceID string) string {
	return CACHE_KEY_EXPERIENCE_DETAIL + experienceID
}

func BuildSlotAvailabilityKey(experienceID, date string) string {
	return CACHE_KEY_SLOTS_BY_EXPERIENCE + experienceID + ":date:" + date
}

func BuildCheckoutSessionKey(sessionID string) string {
	return KEY_CHECKOUT_SESSION + sessionID
}

func BuildUserPrefsKey(userID string) string {
	return KEY_USER_PREFS + userID
}

func BuildUserBookingsKey(userID string, page int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildWaitlistQueueKey(slotID string) string {
	return KEY_WAITLIST_QUEUE + slotID
}

func BuildWaitlistPositionKey(slotID, userID string) string {
	return CACHE_KEY_WAITLIST_POSITION + slotID + ":user:" + userID
}
