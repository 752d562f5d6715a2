package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain/cart"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// SessionCookie cookie con el token de sesión.
const SessionCookie = "cs_session"

// Locals keys para la sesión y su carrito en Fiber.
const (
	LocalSession = "session"
	LocalCart    = "cart"
)

// Authenticator valida un token de sesión y devuelve la sesión viva con su carrito.
type Authenticator interface {
	Authenticate(token string) (*entity.Session, *cart.Cart, error)
}

// AuthMiddleware acepta "Authorization: Bearer <token>" o la cookie de sesión
// y deja la sesión y su carrito en c.Locals.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			token = strings.TrimSpace(parts[1])
		} else {
			token = c.Cookies(SessionCookie)
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		session, crt, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión inválida o expirada"})
		}
		c.Locals(LocalSession, session)
		c.Locals(LocalCart, crt)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetCart devuelve el carrito de la sesión (después del middleware de auth).
func GetCart(c *fiber.Ctx) *cart.Cart {
	crt, _ := c.Locals(LocalCart).(*cart.Cart)
	return crt
}
