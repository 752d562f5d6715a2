package repository

import (
	"time"

	"github.com/csventilacion/cotizador-api/internal/domain/cart"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// SessionRepository define el puerto de sesiones del cotizador. Cada sesión es dueña de su carrito.
type SessionRepository interface {
	Save(session *entity.Session, c *cart.Cart) error
	// Get devuelve la sesión y su carrito; domain.ErrNotFound si no existe o ya venció.
	Get(id string) (*entity.Session, *cart.Cart, error)
	Delete(id string) error
	// PurgeExpired elimina las sesiones vencidas y devuelve cuántas borró.
	PurgeExpired(now time.Time) int
}
