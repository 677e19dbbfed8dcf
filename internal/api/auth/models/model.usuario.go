// Package models - modelo de usuario (Usuario) del dominio auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles de usuario.
const (
	RolAdmin     = "admin"
	RolResidente = "resident"
	RolSeguridad = "security"
	RolInvitado  = "guest"
)

// Estados de la cuenta de usuario.
const (
	EstadoPendiente = "pending"
	EstadoAprobado  = "approved"
	EstadoRechazado = "rejected"
	EstadoInactivo  = "inactive"
)

// Usuario define el modelo de usuario de la plataforma.
// La membresía al residencial está triplicada por compatibilidad con datos
// históricos: ResidencialID es el código de negocio canónico, los otros dos
// son formas legadas que el resolver sabe encadenar.
type Usuario struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirebaseUID      string             `json:"firebaseUid" bson:"firebaseUid" index:"unique"`
	Nombre           string             `json:"nombre" bson:"nombre"`
	Apellido         string             `json:"apellido,omitempty" bson:"apellido,omitempty"`
	Email            string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Telefono         string             `json:"telefono,omitempty" bson:"telefono,omitempty" index:"unique,sparse"`
	Role             string             `json:"role" bson:"role" default:"resident"`
	Status           string             `json:"status" bson:"status" default:"pending"`
	ResidencialID    string             `json:"residencialID,omitempty" bson:"residencialID,omitempty" index:"single"`
	ResidencialIDAlt string             `json:"residencialId,omitempty" bson:"residencialId,omitempty"`
	ResidencialDocID string             `json:"residencialDocId,omitempty" bson:"residencialDocId,omitempty"`
	Calle            string             `json:"calle,omitempty" bson:"calle,omitempty"`
	NumeroCasa       string             `json:"numeroCasa,omitempty" bson:"numeroCasa,omitempty"`
	IsOwner          bool               `json:"isOwner" bson:"isOwner"`
	OwnershipStatus  string             `json:"ownershipStatus,omitempty" bson:"ownershipStatus,omitempty"`
	IsPrimaryUser    bool               `json:"isPrimaryUser" bson:"isPrimaryUser"`
	Token            string             `json:"-" bson:"token,omitempty"`
	MotivoRechazo    string             `json:"motivoRechazo,omitempty" bson:"motivoRechazo,omitempty"`
	CreatedAt        int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64              `json:"updatedAt" bson:"updatedAt"`
}

// EsEstadoValido indica si el estado pertenece al conjunto conocido.
func EsEstadoValido(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoAprobado, EstadoRechazado, EstadoInactivo:
		return true
	}
	return false
}

// EsRolValido indica si el rol pertenece al conjunto conocido.
func EsRolValido(rol string) bool {
	switch rol {
	case RolAdmin, RolResidente, RolSeguridad, RolInvitado:
		return true
	}
	return false
}
