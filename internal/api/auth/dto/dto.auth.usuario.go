// Package authdto - DTOs del dominio auth.
package authdto

import (
	models "zentry_api/internal/api/auth/models"
)

// FirebaseLoginInput datos de entrada del login con Firebase.
type FirebaseLoginInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// LoginResult resultado del login: token de sesión y usuario.
type LoginResult struct {
	Token   string         `json:"token"`
	Usuario models.Usuario `json:"usuario"`
}

// UsuarioCreateInput DTO de creación por el CRUD estándar.
type UsuarioCreateInput struct {
	Nombre          string `json:"nombre" bson:"nombre" validate:"required,no_xss"`
	Apellido        string `json:"apellido" bson:"apellido" validate:"omitempty,no_xss"`
	Email           string `json:"email" bson:"email" validate:"omitempty,email"`
	Telefono        string `json:"telefono" bson:"telefono" validate:"omitempty"`
	Role            string `json:"role" bson:"role" validate:"omitempty,oneof=admin resident security guest"`
	Status          string `json:"status" bson:"status" validate:"omitempty,oneof=pending approved rejected inactive"`
	ResidencialID   string `json:"residencialID" bson:"residencialID" validate:"omitempty"`
	Calle           string `json:"calle" bson:"calle" validate:"omitempty,no_xss"`
	NumeroCasa      string `json:"numeroCasa" bson:"numeroCasa" validate:"omitempty"`
	IsOwner         bool   `json:"isOwner" bson:"isOwner"`
	OwnershipStatus string `json:"ownershipStatus" bson:"ownershipStatus" validate:"omitempty"`
	IsPrimaryUser   bool   `json:"isPrimaryUser" bson:"isPrimaryUser"`
	FirebaseUID     string `json:"firebaseUid" bson:"firebaseUid" validate:"omitempty"`
}

// UsuarioUpdateInput DTO de actualización por el CRUD estándar.
type UsuarioUpdateInput struct {
	Nombre          string `json:"nombre" bson:"nombre" validate:"omitempty,no_xss"`
	Apellido        string `json:"apellido" bson:"apellido" validate:"omitempty,no_xss"`
	Telefono        string `json:"telefono" bson:"telefono" validate:"omitempty"`
	Calle           string `json:"calle" bson:"calle" validate:"omitempty,no_xss"`
	NumeroCasa      string `json:"numeroCasa" bson:"numeroCasa" validate:"omitempty"`
	OwnershipStatus string `json:"ownershipStatus" bson:"ownershipStatus" validate:"omitempty"`
}

// CrearUsuarioInput entrada de los endpoints privilegiados de alta
// (residentes y personal de seguridad). Crea la cuenta en Firebase y el
// documento local en un solo paso.
type CrearUsuarioInput struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,strong_password"`
	Nombre        string `json:"nombre" validate:"required,no_xss"`
	Apellido      string `json:"apellido" validate:"omitempty,no_xss"`
	Telefono      string `json:"telefono" validate:"omitempty"`
	ResidencialID string `json:"residencialID" validate:"required"`
	Calle         string `json:"calle" validate:"omitempty,no_xss"`
	NumeroCasa    string `json:"numeroCasa" validate:"omitempty"`
	IsOwner       bool   `json:"isOwner"`
	IsPrimaryUser bool   `json:"isPrimaryUser"`
}

// CambiarEstadoInput entrada del cambio de estado de cuenta.
type CambiarEstadoInput struct {
	Estado string `json:"estado" validate:"required,oneof=pending approved rejected inactive"`
	Motivo string `json:"motivo" validate:"omitempty,no_xss"`
}

// EliminarUsuariosInput entrada del borrado masivo.
type EliminarUsuariosInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// ResultadoEliminacion resultado por item del borrado masivo.
type ResultadoEliminacion struct {
	ID    string `json:"id"`
	Exito bool   `json:"exito"`
	Error string `json:"error,omitempty"`
}
