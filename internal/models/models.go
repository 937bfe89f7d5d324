package models

import (
	"time"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in the chat history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AdminUser represents a dashboard operator account.
type AdminUser struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Customer represents a client contact person. Customers are keyed by
// email: the same address never produces two rows.
type Customer struct {
	CustomerID int64  `db:"customer_id" json:"customer_id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	Phone      string `db:"phone" json:"phone"`
	Company    string `db:"company" json:"company"`
}

// BookingStatusConfirmed is the default status for a new booking.
const BookingStatusConfirmed = "CONFIRMED"

// Booking represents one project consultation booking row. Date and Time
// are kept in their user-facing forms (YYYY-MM-DD and HH:MM); the store
// converts to SQL DATE/TIME at the boundary.
type Booking struct {
	ID          int64     `db:"id" json:"id"`
	CustomerID  int64     `db:"customer_id" json:"customer_id"`
	BookingType string    `db:"booking_type" json:"booking_type"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// BookingRecord is a booking joined with its customer, as returned by the
// lookup and admin listing queries.
type BookingRecord struct {
	Booking
	CustomerName string `db:"customer_name" json:"customer_name"`
	Company      string `db:"company" json:"company"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
}
