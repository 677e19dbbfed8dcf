// Package panelsync propaga los cambios de tags hacia los paneles de
// acceso vía MQTT. El worker toma trabajos de la cola de panelJobs y
// publica el mensaje de aplicación en el topic del panel destino.
package panelsync

import (
	"encoding/json"
	"fmt"
	"time"

	models "zentry_api/internal/api/tag/models"
	"zentry_api/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

// MensajePanel es el payload MQTT que el panel aplica.
type MensajePanel struct {
	CorrelationID string `json:"correlationId"`
	TagID         string `json:"tagId"`
	NumeroTarjeta string `json:"numeroTarjeta,omitempty"`
	Accion        string `json:"accion"`
	ResidencialID string `json:"residencialId,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// Publisher publica mensajes de sincronización en el broker MQTT.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewPublisher conecta con el broker MQTT configurado.
func NewPublisher(brokerURL, clientID, username, password, topicPrefix string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)
	if username != "" {
		opts.SetUsername(username)
		opts.SetPassword(password)
	}
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.GetAppLogger().WithError(err).Warn("📡 [PANELSYNC] Conexión MQTT perdida; reintentando")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timeout al conectar con el broker MQTT %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("no se pudo conectar con el broker MQTT: %w", err)
	}

	return &Publisher{client: client, topicPrefix: topicPrefix}, nil
}

// Publicar envía el mensaje de aplicación del trabajo al topic del panel
// ({prefix}/{panelID}/comandos) con QoS 1.
func (p *Publisher) Publicar(job models.PanelJob, numeroTarjeta string) error {
	payload, err := json.Marshal(MensajePanel{
		CorrelationID: job.CorrelationID,
		TagID:         job.TagID.Hex(),
		NumeroTarjeta: numeroTarjeta,
		Accion:        job.Accion,
		ResidencialID: job.ResidencialID,
		Timestamp:     time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("%s/%s/comandos", p.topicPrefix, job.PanelID)
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("timeout al publicar en %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("no se pudo publicar en %s: %w", topic, err)
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"topic":          topic,
		"correlation_id": job.CorrelationID,
		"accion":         job.Accion,
	}).Debug("📡 [PANELSYNC] Mensaje publicado")
	return nil
}

// Cerrar desconecta del broker.
func (p *Publisher) Cerrar() {
	p.client.Disconnect(250)
}
