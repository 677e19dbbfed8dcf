// Package models - modelos del dominio residencial.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Residencial representa un fraccionamiento o privada administrada.
// Convive con dos espacios de identificación: el _id del documento y el
// código de negocio residencialID elegido por el administrador. Los datos
// nuevos siempre llevan el código de negocio; el resolver mantiene la
// cadena de fallbacks para documentos históricos que no lo traen.
type Residencial struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ResidencialID string             `json:"residencialId" bson:"residencialID,omitempty" index:"unique,sparse"` // Código de negocio
	Nombre        string             `json:"nombre" bson:"nombre,omitempty"`
	Direccion     string             `json:"direccion" bson:"direccion,omitempty"`
	Ciudad        string             `json:"ciudad" bson:"ciudad,omitempty"`
	Estado        string             `json:"estado" bson:"estado,omitempty"`
	CodigoPostal  string             `json:"codigoPostal" bson:"codigoPostal,omitempty"`
	Telefono      string             `json:"telefono" bson:"telefono,omitempty"`
	TotalCasas    int                `json:"totalCasas" bson:"totalCasas,omitempty"`
	Calles        []string           `json:"calles" bson:"calles,omitempty"`
	Activo        bool               `json:"activo" bson:"activo" default:"true"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// Guardia es el personal de caseta de un residencial. Vive en la
// subcolección residenciales_{docID}_guardias.
type Guardia struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Nombre    string             `json:"nombre" bson:"nombre,omitempty"`
	Apellido  string             `json:"apellido" bson:"apellido,omitempty"`
	Telefono  string             `json:"telefono" bson:"telefono,omitempty"`
	Turno     string             `json:"turno" bson:"turno,omitempty"` // matutino | vespertino | nocturno
	Activo    bool               `json:"activo" bson:"activo" default:"true"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// AreaComun es un área reservable del residencial. Vive en la
// subcolección residenciales_{docID}_areasComunes.
type AreaComun struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Nombre      string             `json:"nombre" bson:"nombre,omitempty"`
	Descripcion string             `json:"descripcion" bson:"descripcion,omitempty"`
	Capacidad   int                `json:"capacidad" bson:"capacidad,omitempty"`
	Horario     string             `json:"horario" bson:"horario,omitempty"`
	Activo      bool               `json:"activo" bson:"activo" default:"true"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}
