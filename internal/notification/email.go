// Package notification - canal de notificaciones por correo (SMTP).
package notification

import (
	"fmt"
	"html"

	"zentry_api/internal/global"
	"zentry_api/internal/logger"

	"gopkg.in/gomail.v2"
)

// Habilitado indica si el canal de correo está configurado. Sin host
// SMTP las notificaciones se omiten en silencio (entornos de desarrollo).
func Habilitado() bool {
	return global.ServerConfig != nil && global.ServerConfig.SMTP_Host != ""
}

// EnviarEmail envía un correo HTML a los destinatarios dados.
func EnviarEmail(asunto, cuerpoHTML string, destinatarios []string) error {
	if !Habilitado() {
		return nil
	}
	if len(destinatarios) == 0 {
		return nil
	}

	cfg := global.ServerConfig

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.SMTP_From)
	msg.SetHeader("To", destinatarios...)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/html", cuerpoHTML)

	dialer := gomail.NewDialer(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_Username, cfg.SMTP_Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("no se pudo enviar el correo: %w", err)
	}
	return nil
}

// EnviarAlertaPanico arma y envía el correo de una alerta de pánico.
// Los errores se loguean y no se propagan: el correo es un canal
// secundario, la alerta ya quedó registrada.
func EnviarAlertaPanico(residencialNombre, nombreUsuario, ubicacion, mensaje string, destinatarios []string) {
	asunto := fmt.Sprintf("🚨 Alerta de pánico - %s", residencialNombre)

	cuerpo := fmt.Sprintf(`
		<h2 style="color:#c0392b;">Alerta de pánico</h2>
		<p><strong>Residencial:</strong> %s</p>
		<p><strong>Usuario:</strong> %s</p>
		<p><strong>Ubicación:</strong> %s</p>
		<p><strong>Mensaje:</strong> %s</p>
		<p style="color:#7f8c8d;font-size:12px;">Este correo se generó automáticamente; no responda a esta dirección.</p>`,
		html.EscapeString(residencialNombre),
		html.EscapeString(nombreUsuario),
		html.EscapeString(ubicacion),
		html.EscapeString(mensaje),
	)

	if err := EnviarEmail(asunto, cuerpo, destinatarios); err != nil {
		logger.GetAppLogger().WithError(err).Warn("No se pudo enviar el correo de alerta de pánico")
	}
}

// EnviarAnuncio envía un anuncio general del residencial por correo.
func EnviarAnuncio(residencialNombre, titulo, contenido string, destinatarios []string) {
	asunto := fmt.Sprintf("[%s] %s", residencialNombre, titulo)

	cuerpo := fmt.Sprintf(`
		<h2>%s</h2>
		<div>%s</div>
		<p style="color:#7f8c8d;font-size:12px;">Anuncio del residencial %s.</p>`,
		html.EscapeString(titulo),
		html.EscapeString(contenido),
		html.EscapeString(residencialNombre),
	)

	if err := EnviarEmail(asunto, cuerpo, destinatarios); err != nil {
		logger.GetAppLogger().WithError(err).Warn("No se pudo enviar el correo de anuncio")
	}
}
