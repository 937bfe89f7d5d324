package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/neoconsult/booking-assistant/internal/core/booking"
	db "github.com/neoconsult/booking-assistant/internal/core/database"
	"github.com/neoconsult/booking-assistant/internal/core/notify"
	"github.com/neoconsult/booking-assistant/internal/core/rag"
	"github.com/neoconsult/booking-assistant/internal/models"
)

const (
	openingPrompt = "Great! Let's book a NeoConsult AI project consultation.\n" +
		"First, may I have your full name?"
	uploadFirstPrompt = "Please upload one or more service documents so I can " +
		"answer detailed questions about NeoConsult."
	confirmRetryPrompt = "Please reply 'yes' to confirm the booking or 'no' to cancel."
	cancelledReply     = "Booking cancelled. You can start again anytime."

	confirmationSubject = "NeoConsult Project Consultation Confirmation"
)

// Assistant is the conversational core: it classifies intent, advances
// the booking flow, and routes general questions through retrieval.
type Assistant struct {
	answerer *rag.Answerer
	store    db.DbClient
	mailer   notify.Mailer
}

func New(answerer *rag.Answerer, store db.DbClient, mailer notify.Mailer) *Assistant {
	return &Assistant{answerer: answerer, store: store, mailer: mailer}
}

// HandleMessage processes one user message to completion and returns the
// assistant reply. It is the single entry point for the chat surface and
// never fails outward; the worst case is an apologetic reply.
func (a *Assistant) HandleMessage(ctx context.Context, sess *Session, message string) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.append(models.RoleUser, message)
	reply := a.dispatch(ctx, sess, strings.TrimSpace(message))
	sess.append(models.RoleAssistant, reply)
	return reply
}

// dispatch routes the message. A booking flow already underway consumes
// the message before intent classification; otherwise free-text answers
// ("Jane Smith") would be misrouted to retrieval.
func (a *Assistant) dispatch(ctx context.Context, sess *Session, message string) string {
	state := &sess.booking

	if state.PendingConfirmation {
		return a.finishBooking(ctx, state, message)
	}
	if state.Active {
		return a.collectField(state, message)
	}

	switch booking.DetectIntent(message) {
	case booking.IntentBookingLookup:
		return a.lookupBookings(ctx, message)
	case booking.IntentBooking:
		// The triggering message is not consumed as a field value.
		state.Active = true
		return openingPrompt
	default:
		if sess.index.Len() == 0 {
			return uploadFirstPrompt
		}
		return a.answerer.Answer(ctx, message, sess.index, sess.history)
	}
}

// collectField validates the message against the next empty field. On
// failure the state does not advance; on success the next question (or
// the confirmation summary) is returned.
func (a *Assistant) collectField(state *booking.State, message string) string {
	missing := state.MissingField()
	if errMsg := state.SetField(missing, message); errMsg != "" {
		return errMsg
	}
	if next := state.MissingField(); next != "" {
		return booking.Prompt(next)
	}
	state.PendingConfirmation = true
	return state.Summary()
}

// finishBooking interprets the confirmation answer. "yes" persists and
// notifies; "no" cancels; anything else re-prompts.
func (a *Assistant) finishBooking(ctx context.Context, state *booking.State, message string) string {
	switch strings.ToLower(message) {
	case "yes":
		date, _ := booking.ParseDate(state.Date)
		tod, _ := booking.ParseTime(state.Time)
		result := booking.Persist(ctx, a.store, booking.Payload{
			Name:        state.Name,
			Company:     state.Company,
			Email:       state.Email,
			Phone:       state.Phone,
			BookingType: state.BookingType,
			Date:        date,
			Time:        tod,
		})
		if !result.Success {
			// State is kept so the user can retry without re-entering data.
			return fmt.Sprintf("Booking failed: %v", result.Err)
		}

		name, email := state.Name, state.Email
		dateStr, timeStr := state.Date, state.Time
		state.Reset()

		body := fmt.Sprintf(
			"Dear %s,\n\nYour NeoConsult AI Project Consultation is confirmed.\n"+
				"Date: %s at %s\n\nThank you for booking with NeoConsult!",
			name, dateStr, timeStr,
		)
		if err := a.mailer.Send(email, confirmationSubject, body); err != nil {
			log.Printf("assistant: confirmation email to %s failed: %v", email, err)
			return "Booking confirmed! (The confirmation email could not be sent.)"
		}
		return fmt.Sprintf("Booking confirmed! A confirmation email has been sent to %s.", email)

	case "no":
		state.Reset()
		return cancelledReply

	default:
		return confirmRetryPrompt
	}
}

// lookupBookings extracts an email as the last whitespace-delimited token
// of the message and lists that customer's bookings newest-first.
func (a *Assistant) lookupBookings(ctx context.Context, message string) string {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return "Please enter a valid email address."
	}
	email := fields[len(fields)-1]
	if !booking.IsValidEmail(email) {
		return "Please enter a valid email address."
	}

	records, err := a.store.GetBookingsByEmail(ctx, email)
	if err != nil {
		log.Printf("assistant: booking lookup for %s failed: %v", email, err)
		return "Sorry, I couldn't look up your bookings right now. Please try again later."
	}
	if len(records) == 0 {
		return "I could not find any bookings for that email."
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf(
			"ID %d: %s on %s at %s (Status: %s)",
			r.ID, r.BookingType, r.Date, r.Time, r.Status,
		))
	}
	return "Here are your bookings:\n" + strings.Join(lines, "\n")
}
