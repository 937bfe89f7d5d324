package db

import (
	"context"

	"github.com/neoconsult/booking-assistant/internal/models"
)

// DbClient defines all persistence operations the assistant needs. It
// abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateAdminUser(ctx context.Context, user *models.AdminUser) error
	GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)

	// GetOrCreateCustomer looks a customer up by email and creates the row
	// when absent; the same email never produces two customers.
	GetOrCreateCustomer(ctx context.Context, name, email, phone, company string) (*models.Customer, error)

	// CreateBooking inserts the booking and fills in its ID, status and
	// creation timestamp.
	CreateBooking(ctx context.Context, booking *models.Booking) error

	// GetBookingsByEmail returns the customer's bookings newest-first.
	GetBookingsByEmail(ctx context.Context, email string) ([]models.BookingRecord, error)

	// ListAllBookings returns every booking joined with its customer,
	// newest-first, for the admin listing.
	ListAllBookings(ctx context.Context) ([]models.BookingRecord, error)

	Close() error
}
