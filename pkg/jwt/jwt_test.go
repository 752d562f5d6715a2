package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/csventilacion/cotizador-api/pkg/jwt"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testSession = "00000000-0000-0000-0000-000000000001"
	testIssuer  = "cotizador-cs-test"
)

func TestGenerateAndParse(t *testing.T) {
	now := time.Now()
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, now, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sid, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSession, sid)
}

func TestParse_TokenExpirado(t *testing.T) {
	now := time.Now()
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	now := time.Now()
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, now, now.Add(time.Hour))
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SinSecretNiSesion(t *testing.T) {
	now := time.Now()
	_, err := pkgjwt.Generate("", testSession, testIssuer, now, now.Add(time.Hour))
	assert.Error(t, err)
	_, err = pkgjwt.Generate(testSecret, "", testIssuer, now, now.Add(time.Hour))
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", "x")
	assert.Error(t, err)
}
