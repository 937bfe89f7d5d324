package booking

import (
	"fmt"
	"strings"
)

// Booking field names, in the order they are collected.
const (
	FieldName    = "name"
	FieldCompany = "company"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldType    = "booking_type"
	FieldDate    = "date"
	FieldTime    = "time"
)

// FieldOrder fixes the slot-filling order. A field is never set while an
// earlier one is still empty.
var FieldOrder = []string{FieldName, FieldCompany, FieldEmail, FieldPhone, FieldType, FieldDate, FieldTime}

var fieldPrompts = map[string]string{
	FieldName:    "May I have your full name?",
	FieldCompany: "Please share your company name.",
	FieldEmail:   "What is your work email address?",
	FieldPhone:   "Please provide your contact number.",
	FieldType:    "What kind of project are you interested in? (e.g., Predictive Analytics, BI Dashboards, Data Platform, GenAI POC)",
	FieldDate:    "On which date would you like to schedule the consultation? (YYYY-MM-DD)",
	FieldTime:    "At what time? (HH:MM in 24-hour format)",
}

// Prompt returns the question asked to collect the given field.
func Prompt(field string) string {
	return fieldPrompts[field]
}

// State tracks one slot-filling booking conversation. All seven fields
// are always present and empty until validated input fills them in
// FieldOrder. Active marks a flow that has been opened but not yet
// confirmed or cancelled.
type State struct {
	Name        string
	Company     string
	Email       string
	Phone       string
	BookingType string
	Date        string
	Time        string

	Active              bool
	PendingConfirmation bool
}

// Reset returns the state to Idle with every field empty.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) field(name string) string {
	switch name {
	case FieldName:
		return s.Name
	case FieldCompany:
		return s.Company
	case FieldEmail:
		return s.Email
	case FieldPhone:
		return s.Phone
	case FieldType:
		return s.BookingType
	case FieldDate:
		return s.Date
	case FieldTime:
		return s.Time
	}
	return ""
}

// MissingField returns the first empty field in collection order, or ""
// when all fields are filled.
func (s *State) MissingField() string {
	for _, f := range FieldOrder {
		if s.field(f) == "" {
			return f
		}
	}
	return ""
}

// SetField validates the value for the named field and stores it. The
// returned message is a user-facing correction when validation fails; the
// field is left empty in that case and the flow does not advance.
func (s *State) SetField(field, value string) (errMsg string) {
	value = strings.TrimSpace(value)

	switch field {
	case FieldEmail:
		if !IsValidEmail(value) {
			return "That doesn't look like a valid email. Please enter a valid email address."
		}
		s.Email = value
	case FieldDate:
		if _, ok := ParseDate(value); !ok {
			return "Please enter date as YYYY-MM-DD."
		}
		s.Date = value
	case FieldTime:
		if _, ok := ParseTime(value); !ok {
			return "Please enter time as HH:MM in 24-hour format."
		}
		s.Time = value
	case FieldName:
		s.Name = value
	case FieldCompany:
		s.Company = value
	case FieldPhone:
		s.Phone = value
	case FieldType:
		s.BookingType = value
	}
	return ""
}

// Summary renders the confirmation summary of all seven fields with the
// yes/no instruction.
func (s *State) Summary() string {
	return fmt.Sprintf(
		"Please confirm your project consultation booking details:\n"+
			"- Contact Name: %s\n"+
			"- Company: %s\n"+
			"- Email: %s\n"+
			"- Phone: %s\n"+
			"- Project Type: %s\n"+
			"- Preferred Date: %s\n"+
			"- Preferred Time: %s\n\n"+
			"Reply 'yes' to confirm or 'no' to cancel.",
		s.Name, s.Company, s.Email, s.Phone, s.BookingType, s.Date, s.Time,
	)
}
