package entity

import "time"

// Session sesión del cotizador abierta con la clave compartida.
// Es dueña de su carrito: al expirar o cerrar sesión el carrito se pierde.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired indica si la sesión ya venció en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
