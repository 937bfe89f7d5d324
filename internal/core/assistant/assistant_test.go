package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoconsult/booking-assistant/internal/core/index"
	"github.com/neoconsult/booking-assistant/internal/core/rag"
	"github.com/neoconsult/booking-assistant/internal/models"
)

type stubEmbedder struct{}

func (stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1}
	}
	return out, nil
}

type stubLLM struct {
	reply string
	err   error
}

func (l stubLLM) Generate(context.Context, string, string) (string, error) {
	return l.reply, l.err
}

type memStore struct {
	customers   map[string]*models.Customer
	bookings    []*models.Booking
	nextID      int64
	bookingErr  error
	customerErr error
}

func newMemStore() *memStore {
	return &memStore{customers: make(map[string]*models.Customer), nextID: 1}
}

func (m *memStore) CreateAdminUser(context.Context, *models.AdminUser) error { return nil }

func (m *memStore) GetAdminUserByEmail(context.Context, string) (*models.AdminUser, error) {
	return nil, nil
}

func (m *memStore) GetOrCreateCustomer(_ context.Context, name, email, phone, company string) (*models.Customer, error) {
	if m.customerErr != nil {
		return nil, m.customerErr
	}
	if c, ok := m.customers[email]; ok {
		return c, nil
	}
	c := &models.Customer{CustomerID: m.nextID, Name: name, Email: email, Phone: phone, Company: company}
	m.nextID++
	m.customers[email] = c
	return c, nil
}

func (m *memStore) CreateBooking(_ context.Context, b *models.Booking) error {
	if m.bookingErr != nil {
		return m.bookingErr
	}
	b.ID = int64(len(m.bookings) + 1)
	b.CreatedAt = time.Now()
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *memStore) GetBookingsByEmail(_ context.Context, email string) ([]models.BookingRecord, error) {
	c, ok := m.customers[email]
	if !ok {
		return nil, nil
	}
	var out []models.BookingRecord
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if m.bookings[i].CustomerID == c.CustomerID {
			out = append(out, models.BookingRecord{
				Booking:      *m.bookings[i],
				CustomerName: c.Name,
				Company:      c.Company,
				Email:        c.Email,
				Phone:        c.Phone,
			})
		}
	}
	return out, nil
}

func (m *memStore) ListAllBookings(ctx context.Context) ([]models.BookingRecord, error) {
	var out []models.BookingRecord
	for email := range m.customers {
		recs, _ := m.GetBookingsByEmail(ctx, email)
		out = append(out, recs...)
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

type memMailer struct {
	sent []string
	err  error
}

func (m *memMailer) Send(to, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestAssistant(store *memStore, mailer *memMailer, llm stubLLM) *Assistant {
	answerer := rag.NewAnswerer(stubEmbedder{}, llm, 4)
	return New(answerer, store, mailer)
}

var flowAnswers = []string{
	"Jane Smith", "Acme Corp", "jane@acme.com", "+1 555 0100",
	"Predictive Analytics", "2024-03-05", "14:30",
}

func runFlow(t *testing.T, a *Assistant, sess *Session) string {
	t.Helper()
	reply := a.HandleMessage(context.Background(), sess, "I want to book a consultation")
	require.Contains(t, reply, "full name")
	for _, answer := range flowAnswers {
		reply = a.HandleMessage(context.Background(), sess, answer)
	}
	return reply
}

func TestBookingFlow_ConfirmPersistsOnce(t *testing.T) {
	store := newMemStore()
	mailer := &memMailer{}
	a := newTestAssistant(store, mailer, stubLLM{reply: "ok"})
	sess := NewSession(25)

	reply := runFlow(t, a, sess)
	assert.Contains(t, reply, "Please confirm your project consultation booking details:")
	assert.Contains(t, reply, "- Contact Name: Jane Smith")

	reply = a.HandleMessage(context.Background(), sess, "yes")
	assert.Equal(t, "Booking confirmed! A confirmation email has been sent to jane@acme.com.", reply)
	require.Len(t, store.bookings, 1)
	assert.Equal(t, models.BookingStatusConfirmed, store.bookings[0].Status)
	assert.Equal(t, []string{"jane@acme.com"}, mailer.sent)

	// state is reset: the next booking starts from the beginning
	reply = a.HandleMessage(context.Background(), sess, "book another consultation")
	assert.Contains(t, reply, "full name")
}

func TestBookingFlow_CancelDiscards(t *testing.T) {
	store := newMemStore()
	a := newTestAssistant(store, &memMailer{}, stubLLM{reply: "ok"})
	sess := NewSession(25)

	runFlow(t, a, sess)
	reply := a.HandleMessage(context.Background(), sess, "no")
	assert.Equal(t, "Booking cancelled. You can start again anytime.", reply)
	assert.Empty(t, store.bookings)
	assert.Empty(t, store.customers)
}

func TestBookingFlow_InvalidEmailDoesNotAdvance(t *testing.T) {
	a := newTestAssistant(newMemStore(), &memMailer{}, stubLLM{reply: "ok"})
	sess := NewSession(25)

	a.HandleMessage(context.Background(), sess, "book a slot")
	a.HandleMessage(context.Background(), sess, "Jane Smith")
	a.HandleMessage(context.Background(), sess, "Acme Corp")

	reply := a.HandleMessage(context.Background(), sess, "not-an-email")
	assert.Equal(t, "That doesn't look like a valid email. Please enter a valid email address.", reply)

	// the same field is asked again and accepts a valid value
	reply = a.HandleMessage(context.Background(), sess, "jane@acme.com")
	assert.Contains(t, reply, "contact number")
}

func TestBookingFlow_ConfirmRePrompt(t *testing.T) {
	a := newTestAssistant(newMemStore(), &memMailer{}, stubLLM{reply: "ok"})
	sess := NewSession(25)

	runFlow(t, a, sess)
	reply := a.HandleMessage(context.Background(), sess, "maybe")
	assert.Equal(t, "Please reply 'yes' to confirm the booking or 'no' to cancel.", reply)
	// still pending: yes works afterwards
	reply = a.HandleMessage(context.Background(), sess, "YES")
	assert.Contains(t, reply, "Booking confirmed!")
}

func TestBookingFlow_PersistFailureKeepsState(t *testing.T) {
	store := newMemStore()
	a := newTestAssistant(store, &memMailer{}, stubLLM{reply: "ok"})
	sess := NewSession(25)

	runFlow(t, a, sess)
	store.bookingErr = errors.New("connection refused")
	reply := a.HandleMessage(context.Background(), sess, "yes")
	assert.Contains(t, reply, "Booking failed:")

	// retry without re-entering any field
	store.bookingErr = nil
	reply = a.HandleMessage(context.Background(), sess, "yes")
	assert.Contains(t, reply, "Booking confirmed!")
	require.Len(t, store.bookings, 1)
}

func TestBookingFlow_MailFailureStillConfirms(t *testing.T) {
	store := newMemStore()
	a := newTestAssistant(store, &memMailer{err: errors.New("smtp down")}, stubLLM{reply: "ok"})
	sess := NewSession(25)

	runFlow(t, a, sess)
	reply := a.HandleMessage(context.Background(), sess, "yes")
	assert.Equal(t, "Booking confirmed! (The confirmation email could not be sent.)", reply)
	assert.Len(t, store.bookings, 1)
}

func TestLookup(t *testing.T) {
	store := newMemStore()
	mailer := &memMailer{}
	a := newTestAssistant(store, mailer, stubLLM{reply: "ok"})
	sess := NewSession(25)

	runFlow(t, a, sess)
	a.HandleMessage(context.Background(), sess, "yes")

	reply := a.HandleMessage(context.Background(), sess, "booking status for jane@acme.com")
	assert.Contains(t, reply, "Here are your bookings:")
	assert.Contains(t, reply, "ID 1: Predictive Analytics on 2024-03-05 at 14:30 (Status: CONFIRMED)")

	reply = a.HandleMessage(context.Background(), sess, "my bookings nobody@acme.com")
	assert.Equal(t, "I could not find any bookings for that email.", reply)

	reply = a.HandleMessage(context.Background(), sess, "my booking please")
	assert.Equal(t, "Please enter a valid email address.", reply)
}

func TestGeneral_UploadFirstWithoutIndex(t *testing.T) {
	a := newTestAssistant(newMemStore(), &memMailer{}, stubLLM{reply: "ok"})
	sess := NewSession(25)

	reply := a.HandleMessage(context.Background(), sess, "what services do you offer?")
	assert.Contains(t, reply, "upload one or more service documents")
}

func TestGeneral_AnswersWithIndex(t *testing.T) {
	a := newTestAssistant(newMemStore(), &memMailer{}, stubLLM{reply: "We build dashboards."})
	sess := NewSession(25)

	ix, err := index.Build(context.Background(), stubEmbedder{}, []string{"NeoConsult builds dashboards."})
	require.NoError(t, err)
	sess.SetIndex(ix)

	reply := a.HandleMessage(context.Background(), sess, "what services do you offer?")
	assert.Equal(t, "We build dashboards.", reply)
}

func TestGeneral_GenerationFailureFallsBack(t *testing.T) {
	a := newTestAssistant(newMemStore(), &memMailer{}, stubLLM{err: errors.New("quota exceeded")})
	sess := NewSession(25)

	ix, err := index.Build(context.Background(), stubEmbedder{}, []string{"NeoConsult offers consulting services for analytics."})
	require.NoError(t, err)
	sess.SetIndex(ix)

	reply := a.HandleMessage(context.Background(), sess, "tell me about your services")
	assert.Contains(t, reply, "temporarily unable to use the language model")
	assert.Contains(t, reply, "consulting services")
}

func TestSession_HistoryTruncation(t *testing.T) {
	a := newTestAssistant(newMemStore(), &memMailer{}, stubLLM{reply: "ok"})
	sess := NewSession(4)

	for i := 0; i < 5; i++ {
		a.HandleMessage(context.Background(), sess, "hello")
	}
	history := sess.History()
	assert.Len(t, history, 4)
	assert.Equal(t, models.RoleUser, history[len(history)-2].Role)
	assert.Equal(t, models.RoleAssistant, history[len(history)-1].Role)
}
