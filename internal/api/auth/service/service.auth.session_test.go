package authsvc

import (
	"testing"

	"zentry_api/config"
	"zentry_api/internal/common"
	"zentry_api/internal/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configurarSecreto(t *testing.T) {
	t.Helper()
	global.ServerConfig = &config.Configuration{JwtSecret: "secreto-de-prueba"}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	configurarSecreto(t)

	token, err := GenerateSessionToken("64aabbccddeeff0011223344", "security", "LOMAS-01")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64aabbccddeeff0011223344", claims.UserID)
	assert.Equal(t, "security", claims.Rol)
	assert.Equal(t, "LOMAS-01", claims.ResidencialID)
	assert.Equal(t, "64aabbccddeeff0011223344", claims.Subject)
	assert.Equal(t, sessionIssuer, claims.Issuer)
}

func TestParseSessionToken_Invalido(t *testing.T) {
	configurarSecreto(t)

	_, err := ParseSessionToken("no-es-un-jwt")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseSessionToken_SecretoDistinto(t *testing.T) {
	configurarSecreto(t)
	token, err := GenerateSessionToken("64aabbccddeeff0011223344", "resident", "")
	require.NoError(t, err)

	global.ServerConfig = &config.Configuration{JwtSecret: "otro-secreto"}
	_, err = ParseSessionToken(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
