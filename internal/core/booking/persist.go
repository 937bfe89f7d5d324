package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	db "github.com/neoconsult/booking-assistant/internal/core/database"
	"github.com/neoconsult/booking-assistant/internal/models"
)

// Payload carries the validated booking fields across the persistence
// boundary. Date and Time are the parsed forms of the user's answers.
type Payload struct {
	Name        string
	Company     string
	Email       string
	Phone       string
	BookingType string
	Date        time.Time
	Time        time.Time
}

// Result reports the outcome of a persistence attempt.
type Result struct {
	Success   bool
	BookingID int64
	Err       error
}

// Persist stores a booking under a customer looked up (or created) by
// email. The booking is always attached to exactly one customer and
// starts in the confirmed status.
func Persist(ctx context.Context, store db.DbClient, p Payload) Result {
	if !IsValidEmail(p.Email) {
		return Result{Err: errors.New("invalid email address")}
	}

	customer, err := store.GetOrCreateCustomer(ctx, p.Name, p.Email, p.Phone, p.Company)
	if err != nil {
		return Result{Err: fmt.Errorf("customer: %w", err)}
	}

	b := &models.Booking{
		CustomerID:  customer.CustomerID,
		BookingType: p.BookingType,
		Date:        p.Date.Format("2006-01-02"),
		Time:        p.Time.Format("15:04"),
		Status:      models.BookingStatusConfirmed,
	}
	if err := store.CreateBooking(ctx, b); err != nil {
		return Result{Err: fmt.Errorf("booking: %w", err)}
	}

	return Result{Success: true, BookingID: b.ID}
}
