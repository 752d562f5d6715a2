package dto

import "time"

// LoginRequest entrada para abrir sesión con la clave compartida.
type LoginRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

// LoginResponse token de sesión (también se entrega como cookie).
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
