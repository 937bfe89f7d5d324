package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoconsult/booking-assistant/internal/models"
)

// listStore serves a fixed set of booking records.
type listStore struct {
	records []models.BookingRecord
	err     error
}

func (s *listStore) CreateAdminUser(context.Context, *models.AdminUser) error { return nil }

func (s *listStore) GetAdminUserByEmail(context.Context, string) (*models.AdminUser, error) {
	return nil, nil
}

func (s *listStore) GetOrCreateCustomer(context.Context, string, string, string, string) (*models.Customer, error) {
	return nil, nil
}

func (s *listStore) CreateBooking(context.Context, *models.Booking) error { return nil }

func (s *listStore) GetBookingsByEmail(context.Context, string) ([]models.BookingRecord, error) {
	return nil, nil
}

func (s *listStore) ListAllBookings(context.Context) ([]models.BookingRecord, error) {
	return s.records, s.err
}

func (s *listStore) Close() error { return nil }

func record(id int64, name, email, date string) models.BookingRecord {
	return models.BookingRecord{
		Booking: models.Booking{
			ID:          id,
			BookingType: "Predictive Analytics",
			Date:        date,
			Time:        "10:00",
			Status:      models.BookingStatusConfirmed,
		},
		CustomerName: name,
		Email:        email,
	}
}

func listBookings(t *testing.T, h *AdminHandler, query string) ([]models.BookingRecord, int) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings"+query, nil)
	rec := httptest.NewRecorder()
	h.ListBookings(rec, req)
	if rec.Code != http.StatusOK {
		return nil, rec.Code
	}
	var out []models.BookingRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out, rec.Code
}

func TestListBookings_NoFilter(t *testing.T) {
	store := &listStore{records: []models.BookingRecord{
		record(2, "Jane Smith", "jane@acme.com", "2024-03-05"),
		record(1, "Bob Lee", "bob@globex.com", "2024-03-01"),
	}}
	h := NewAdminHandler(store)

	out, code := listBookings(t, h, "")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestListBookings_Filters(t *testing.T) {
	store := &listStore{records: []models.BookingRecord{
		record(3, "Jane Smith", "jane@acme.com", "2024-03-05"),
		record(2, "Janet Jones", "janet@globex.com", "2024-03-05"),
		record(1, "Bob Lee", "bob@globex.com", "2024-03-01"),
	}}
	h := NewAdminHandler(store)

	out, _ := listBookings(t, h, "?name=jane")
	require.Len(t, out, 2)

	out, _ = listBookings(t, h, "?email=globex")
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)

	out, _ = listBookings(t, h, "?date=2024-03-01")
	require.Len(t, out, 1)
	assert.Equal(t, "Bob Lee", out[0].CustomerName)

	out, _ = listBookings(t, h, "?name=jane&email=acme&date=2024-03-05")
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)

	out, _ = listBookings(t, h, "?name=nomatch")
	assert.Empty(t, out)
}

func TestListBookings_BadDateFilter(t *testing.T) {
	h := NewAdminHandler(&listStore{})
	_, code := listBookings(t, h, "?date=march-5")
	assert.Equal(t, http.StatusBadRequest, code)
}
