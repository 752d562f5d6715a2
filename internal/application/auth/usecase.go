package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/cart"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/repository"
	"github.com/csventilacion/cotizador-api/pkg/jwt"
)

// SessionConfig configuración para generación de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase acceso al cotizador con una clave compartida: abrir, validar y cerrar sesión.
type AuthUseCase struct {
	sessions       repository.SessionRepository
	passphraseHash []byte
	cfg            SessionConfig
	now            func() time.Time
}

// NewAuthUseCase construye el caso de uso. passphraseHash es el hash bcrypt de la clave.
func NewAuthUseCase(sessions repository.SessionRepository, passphraseHash string, cfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{
		sessions:       sessions,
		passphraseHash: []byte(passphraseHash),
		cfg:            cfg,
		now:            time.Now,
	}
}

// HashPassphrase hashea la clave en texto plano con bcrypt.
func HashPassphrase(plain string, cost int) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("%w: clave vacía", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash clave: %w", err)
	}
	return string(hash), nil
}

// Login verifica la clave, abre una sesión con carrito vacío y retorna su token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Passphrase == "" {
		return nil, fmt.Errorf("%w: clave requerida", domain.ErrInvalidInput)
	}
	if err := bcrypt.CompareHashAndPassword(uc.passphraseHash, []byte(in.Passphrase)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("verificar clave: %w", err)
	}

	now := uc.now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Save(session, cart.New()); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	token, err := jwt.Generate(uc.cfg.Secret, session.ID, uc.cfg.Issuer, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, SessionID: session.ID, ExpiresAt: session.ExpiresAt}, nil
}

// Authenticate valida el token y devuelve la sesión viva con su carrito.
// Token inválido, sesión cerrada o vencida → ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(token string) (*entity.Session, *cart.Cart, error) {
	sessionID, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	session, c, err := uc.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: sesión cerrada o vencida", domain.ErrUnauthorized)
		}
		return nil, nil, err
	}
	return session, c, nil
}

// Logout cierra la sesión; su carrito se descarta.
func (uc *AuthUseCase) Logout(sessionID string) error {
	return uc.sessions.Delete(sessionID)
}

// PurgeExpired elimina sesiones vencidas.
func (uc *AuthUseCase) PurgeExpired() int {
	return uc.sessions.PurgeExpired(uc.now())
}
