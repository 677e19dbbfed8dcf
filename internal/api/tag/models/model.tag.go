// Package models - modelos del dominio de tags vehiculares.
package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados del tag.
const (
	TagActivo        = "active"
	TagDeshabilitado = "disabled"
	TagPendiente     = "pending"
)

// Tag es un tag vehicular de acceso. El houseID se deriva del residencial,
// la calle y el número de casa; identifica la vivienda sin importar qué
// usuario del hogar registró el tag.
type Tag struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	NumeroTarjeta string             `json:"numeroTarjeta" bson:"numeroTarjeta,omitempty" index:"unique"`
	ResidencialID string             `json:"residencialId" bson:"residencialID,omitempty" index:"single"`
	HouseID       string             `json:"houseId" bson:"houseID,omitempty" index:"single"`
	Calle         string             `json:"calle" bson:"calle,omitempty"`
	NumeroCasa    string             `json:"numeroCasa" bson:"numeroCasa,omitempty"`
	UsuarioID     primitive.ObjectID `json:"usuarioId" bson:"usuarioId,omitempty"`
	Vehiculo      string             `json:"vehiculo" bson:"vehiculo,omitempty"`
	Placa         string             `json:"placa" bson:"placa,omitempty"`
	Paneles       []string           `json:"paneles" bson:"paneles,omitempty"`
	Status        string             `json:"status" bson:"status,omitempty" default:"pending"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// DeriveHouseID construye el identificador de vivienda a partir del
// residencial, la calle y el número de casa. Normaliza espacios y
// mayúsculas para que la misma casa siempre produzca el mismo ID.
func DeriveHouseID(residencialID, calle, numeroCasa string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(s)), "-"))
	}
	return fmt.Sprintf("%s_%s_%s", norm(residencialID), norm(calle), norm(numeroCasa))
}

// EsEstadoTagValido indica si el estado del tag es uno de los conocidos.
func EsEstadoTagValido(estado string) bool {
	switch estado {
	case TagActivo, TagDeshabilitado, TagPendiente:
		return true
	}
	return false
}
