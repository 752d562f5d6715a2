package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/csventilacion/cotizador-api/internal/application/auth"
	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/memory"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassphrase("CS2026", bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(memory.NewSessionStore(), hash, auth.SessionConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "cotizador-cs-test",
	})
}

func TestLogin_ClaveCorrectaAbreSesion(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(dto.LoginRequest{Passphrase: "CS2026"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	session, c, err := uc.Authenticate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.SessionID, session.ID)
	assert.Equal(t, 0, c.Len())
}

func TestLogin_ClaveIncorrecta(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Passphrase: "cs2026"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(dto.LoginRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogout_InvalidaElToken(t *testing.T) {
	uc := newAuth(t)
	out, err := uc.Login(dto.LoginRequest{Passphrase: "CS2026"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(out.SessionID))

	_, _, err = uc.Authenticate(out.Token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestAuthenticate_TokenBasura(t *testing.T) {
	_, _, err := newAuth(t).Authenticate("no.es.token")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestSesionesIndependientes(t *testing.T) {
	uc := newAuth(t)
	a, err := uc.Login(dto.LoginRequest{Passphrase: "CS2026"})
	require.NoError(t, err)
	b, err := uc.Login(dto.LoginRequest{Passphrase: "CS2026"})
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID, b.SessionID)

	_, cartA, err := uc.Authenticate(a.Token)
	require.NoError(t, err)
	_, cartB, err := uc.Authenticate(b.Token)
	require.NoError(t, err)
	assert.NotSame(t, cartA, cartB)
}
