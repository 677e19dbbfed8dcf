// Package models - modelos del dominio de alertas de pánico.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Estados de la alerta.
const (
	AlertaActiva   = "activa"
	AlertaAtendida = "atendida"
	AlertaCerrada  = "cerrada"
)

// AlertaPanico es una alerta de pánico. Los datos históricos vienen de
// varias generaciones del sistema y no comparten ortografía de campos:
// status/estado, read/leida, residencialID/residencialId. El modelo
// declara ambas variantes y los accesores Efectivo* resuelven cuál
// aplica en cada documento.
type AlertaPanico struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Variantes de pertenencia al residencial
	ResidencialID    string `json:"residencialId" bson:"residencialID,omitempty"`
	ResidencialIDAlt string `json:"residencialIdAlt,omitempty" bson:"residencialId,omitempty"`

	// Variantes de estado
	Status string `json:"status,omitempty" bson:"status,omitempty"`
	Estado string `json:"estado,omitempty" bson:"estado,omitempty"`

	// Variantes de lectura
	Read  *bool `json:"read,omitempty" bson:"read,omitempty"`
	Leida *bool `json:"leida,omitempty" bson:"leida,omitempty"`

	UsuarioID     primitive.ObjectID `json:"usuarioId" bson:"usuarioId,omitempty"`
	NombreUsuario string             `json:"nombreUsuario" bson:"nombreUsuario,omitempty"`
	Telefono      string             `json:"telefono" bson:"telefono,omitempty"`
	Calle         string             `json:"calle" bson:"calle,omitempty"`
	NumeroCasa    string             `json:"numeroCasa" bson:"numeroCasa,omitempty"`
	Mensaje       string             `json:"mensaje" bson:"mensaje,omitempty"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// EfectivoResidencial resuelve la pertenencia al residencial sin
// importar con qué ortografía se guardó.
func (a AlertaPanico) EfectivoResidencial() string {
	if a.ResidencialID != "" {
		return a.ResidencialID
	}
	return a.ResidencialIDAlt
}

// EfectivoStatus resuelve el estado de la alerta. Documentos sin
// ninguna variante se consideran activos.
func (a AlertaPanico) EfectivoStatus() string {
	if a.Status != "" {
		return a.Status
	}
	if a.Estado != "" {
		return a.Estado
	}
	return AlertaActiva
}

// EfectivoLeida resuelve la marca de lectura.
func (a AlertaPanico) EfectivoLeida() bool {
	if a.Read != nil {
		return *a.Read
	}
	if a.Leida != nil {
		return *a.Leida
	}
	return false
}

// Ubicacion arma la ubicación legible de la alerta.
func (a AlertaPanico) Ubicacion() string {
	switch {
	case a.Calle != "" && a.NumeroCasa != "":
		return a.Calle + " " + a.NumeroCasa
	case a.Calle != "":
		return a.Calle
	case a.NumeroCasa != "":
		return a.NumeroCasa
	}
	return "sin ubicación"
}

// PerteneceAResidencial indica si la alerta pertenece al residencial
// dado, considerando ambas variantes de campo.
func (a AlertaPanico) PerteneceAResidencial(residencialID string) bool {
	return a.ResidencialID == residencialID || a.ResidencialIDAlt == residencialID
}
