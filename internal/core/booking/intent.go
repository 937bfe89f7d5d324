package booking

import "strings"

// Intent is the coarse routing class of an incoming message.
type Intent string

const (
	IntentBooking       Intent = "booking"
	IntentBookingLookup Intent = "booking_lookup"
	IntentGeneral       Intent = "general"
)

var (
	lookupKeywords  = []string{"my booking", "my bookings", "booking status"}
	bookingKeywords = []string{"book", "booking", "consultation", "project call", "schedule", "slot"}
)

// DetectIntent classifies a message by case-insensitive keyword
// containment, lookup keywords taking precedence over booking keywords.
func DetectIntent(message string) Intent {
	msg := strings.ToLower(message)
	for _, k := range lookupKeywords {
		if strings.Contains(msg, k) {
			return IntentBookingLookup
		}
	}
	for _, k := range bookingKeywords {
		if strings.Contains(msg, k) {
			return IntentBooking
		}
	}
	return IntentGeneral
}
