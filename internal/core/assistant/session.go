package assistant

import (
	"sync"

	"github.com/neoconsult/booking-assistant/internal/core/booking"
	"github.com/neoconsult/booking-assistant/internal/core/index"
	"github.com/neoconsult/booking-assistant/internal/models"
)

const defaultHistoryLimit = 25

// Session holds the mutable state of the single active conversation: the
// truncated chat history, the slot-filling booking state, and the current
// document index snapshot. One message is processed to completion before
// the next; the mutex only guards against overlapping HTTP requests.
type Session struct {
	mu      sync.Mutex
	history []models.ConversationTurn
	booking booking.State
	index   *index.Index
	limit   int
}

func NewSession(historyLimit int) *Session {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Session{limit: historyLimit}
}

// SetIndex replaces the document index snapshot wholesale. Passing the
// previous index through queries already in flight is fine; there is no
// partial-update path.
func (s *Session) SetIndex(ix *index.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = ix
}

// History returns a copy of the retained conversation turns.
func (s *Session) History() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ConversationTurn(nil), s.history...)
}

// append records a turn, silently dropping the oldest turns beyond the
// retention limit. Callers must hold mu.
func (s *Session) append(role, content string) {
	s.history = append(s.history, models.ConversationTurn{Role: role, Content: content})
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
}
