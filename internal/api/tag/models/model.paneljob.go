package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Estados del trabajo de sincronización con panel.
const (
	JobEncolado  = "queued"
	JobEnProceso = "running"
	JobTerminado = "done"
	JobError     = "error"
)

// Acciones que un panel puede aplicar sobre un tag.
const (
	AccionAlta = "alta" // dar de alta el tag en el panel
	AccionBaja = "baja" // dar de baja el tag en el panel
)

// MaxIntentosJob limita los reintentos de un trabajo antes de quedar en
// error cuando no hay límite configurado.
const MaxIntentosJob = 3

// EstadoTrasFallo decide el estado del trabajo después de un intento
// fallido: vuelve a la cola mientras queden reintentos, queda en error
// al agotarlos. Un límite no positivo usa MaxIntentosJob.
func EstadoTrasFallo(intentos, maxIntentos int) string {
	if maxIntentos <= 0 {
		maxIntentos = MaxIntentosJob
	}
	if intentos >= maxIntentos {
		return JobError
	}
	return JobEncolado
}

// PanelJob es un trabajo de sincronización: aplicar una acción de un tag
// sobre un panel de acceso. El worker de panelsync los procesa en orden
// de llegada; el correlationID viaja en el mensaje MQTT para correlacionar
// la respuesta del panel.
type PanelJob struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TagID         primitive.ObjectID `json:"tagId" bson:"tagId,omitempty" index:"single"`
	PanelID       string             `json:"panelId" bson:"panelId,omitempty" index:"single"`
	Accion        string             `json:"accion" bson:"accion,omitempty"`
	Status        string             `json:"status" bson:"status,omitempty" default:"queued" index:"single"`
	Intentos      int                `json:"intentos" bson:"intentos"`
	CorrelationID string             `json:"correlationId" bson:"correlationId,omitempty"`
	ResidencialID string             `json:"residencialId" bson:"residencialID,omitempty" index:"single"`
	UltimoError   string             `json:"ultimoError" bson:"ultimoError,omitempty"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// TagPanelStatus es la vista "último trabajo por panel" de un tag. Es lo
// que el tablero consulta para saber si el tag ya quedó aplicado en todos
// los paneles.
type TagPanelStatus struct {
	PanelID       string `json:"panelId" bson:"_id"`
	Status        string `json:"status" bson:"status"`
	Accion        string `json:"accion" bson:"accion"`
	CorrelationID string `json:"correlationId" bson:"correlationId"`
	Intentos      int    `json:"intentos" bson:"intentos"`
	UltimoError   string `json:"ultimoError" bson:"ultimoError,omitempty"`
	UpdatedAt     int64  `json:"updatedAt" bson:"updatedAt"`
}
