// Package models - modelos del dominio de mensajería.
// Todo el dominio vive en subcolecciones por residencial:
// residenciales_{docID}_chats, _mensajes y _notificaciones.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Chat es un hilo de conversación dentro del residencial.
type Chat struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Titulo          string               `json:"titulo" bson:"titulo,omitempty"`
	Participantes   []primitive.ObjectID `json:"participantes" bson:"participantes,omitempty"`
	CreadoPor       primitive.ObjectID   `json:"creadoPor" bson:"creadoPor,omitempty"`
	UltimoMensajeAt int64                `json:"ultimoMensajeAt" bson:"ultimoMensajeAt,omitempty"`
	CreatedAt       int64                `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt       int64                `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// Mensaje es un mensaje dentro de un chat.
type Mensaje struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	ChatID      primitive.ObjectID   `json:"chatId" bson:"chatId,omitempty" index:"single"`
	AutorID     primitive.ObjectID   `json:"autorId" bson:"autorId,omitempty"`
	NombreAutor string               `json:"nombreAutor" bson:"nombreAutor,omitempty"`
	Contenido   string               `json:"contenido" bson:"contenido,omitempty"`
	LeidoPor    []primitive.ObjectID `json:"leidoPor" bson:"leidoPor,omitempty"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// Notificacion es un anuncio general del residencial.
type Notificacion struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Titulo       string             `json:"titulo" bson:"titulo,omitempty"`
	Contenido    string             `json:"contenido" bson:"contenido,omitempty"`
	PublicadoPor primitive.ObjectID `json:"publicadoPor" bson:"publicadoPor,omitempty"`
	PorCorreo    bool               `json:"porCorreo" bson:"porCorreo"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}
