package notification

import (
	"testing"

	"zentry_api/config"
	"zentry_api/internal/global"

	"github.com/stretchr/testify/assert"
)

func TestHabilitado(t *testing.T) {
	original := global.ServerConfig
	defer func() { global.ServerConfig = original }()

	global.ServerConfig = nil
	assert.False(t, Habilitado())

	global.ServerConfig = &config.Configuration{}
	assert.False(t, Habilitado())

	global.ServerConfig = &config.Configuration{SMTP_Host: "smtp.zentry.local"}
	assert.True(t, Habilitado())
}

func TestEnviarEmail_SinSMTPSeOmite(t *testing.T) {
	original := global.ServerConfig
	defer func() { global.ServerConfig = original }()

	// Sin SMTP configurado el canal se omite en silencio, no es un error
	global.ServerConfig = &config.Configuration{}
	err := EnviarEmail("Asunto", "<p>cuerpo</p>", []string{"alguien@example.com"})
	assert.NoError(t, err)
}

func TestEnviarEmail_SinDestinatariosSeOmite(t *testing.T) {
	original := global.ServerConfig
	defer func() { global.ServerConfig = original }()

	global.ServerConfig = &config.Configuration{SMTP_Host: "smtp.zentry.local"}
	err := EnviarEmail("Asunto", "<p>cuerpo</p>", nil)
	assert.NoError(t, err)
}
