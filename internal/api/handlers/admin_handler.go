package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/neoconsult/booking-assistant/internal/core/booking"
	db "github.com/neoconsult/booking-assistant/internal/core/database"
	"github.com/neoconsult/booking-assistant/internal/models"
)

// AdminHandler serves the booking listing behind the admin dashboard.
type AdminHandler struct {
	dbclient db.DbClient
}

func NewAdminHandler(dbclient db.DbClient) *AdminHandler {
	return &AdminHandler{dbclient: dbclient}
}

// ListBookings returns all bookings newest-first, optionally filtered by
// contact name or email (case-insensitive substring) and exact date.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filterName := strings.ToLower(r.URL.Query().Get("name"))
	filterEmail := strings.ToLower(r.URL.Query().Get("email"))
	filterDate := strings.TrimSpace(r.URL.Query().Get("date"))

	if filterDate != "" {
		if _, ok := booking.ParseDate(filterDate); !ok {
			http.Error(w, "date filter must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	records, err := h.dbclient.ListAllBookings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := make([]models.BookingRecord, 0, len(records))
	for _, rec := range records {
		if filterName != "" && !strings.Contains(strings.ToLower(rec.CustomerName), filterName) {
			continue
		}
		if filterEmail != "" && !strings.Contains(strings.ToLower(rec.Email), filterEmail) {
			continue
		}
		if filterDate != "" && rec.Date != filterDate {
			continue
		}
		filtered = append(filtered, rec)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filtered)
}
