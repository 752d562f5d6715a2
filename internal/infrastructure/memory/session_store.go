package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/cart"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

type sessionEntry struct {
	session entity.Session
	cart    *cart.Cart
}

// SessionStore sesiones en memoria, seguro para uso concurrente.
// Los datos se pierden al reiniciar el proceso.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

// NewSessionStore construye el store con el reloj del sistema.
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock permite fijar el reloj (tests).
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      now,
	}
}

// Save guarda o reemplaza la sesión con su carrito.
func (s *SessionStore) Save(session *entity.Session, c *cart.Cart) error {
	if session.ID == "" {
		return fmt.Errorf("%w: id de sesión requerido", domain.ErrInvalidInput)
	}
	if c == nil {
		c = cart.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &sessionEntry{session: *session, cart: c}
	return nil
}

// Get devuelve una copia de la sesión y su carrito. Una sesión vencida se borra y se reporta como inexistente.
func (s *SessionStore) Get(id string) (*entity.Session, *cart.Cart, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: sesión %s", domain.ErrNotFound, id)
	}
	if e.session.Expired(s.now()) {
		_ = s.Delete(id)
		return nil, nil, fmt.Errorf("%w: sesión %s vencida", domain.ErrNotFound, id)
	}
	sess := e.session
	return &sess, e.cart, nil
}

// Delete elimina la sesión y su carrito. Borrar una sesión inexistente no es error.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// PurgeExpired elimina las sesiones vencidas en now.
func (s *SessionStore) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if e.session.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
