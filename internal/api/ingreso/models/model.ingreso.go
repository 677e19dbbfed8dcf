// Package models - modelos del dominio de ingresos (registro de caseta).
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Estados del ingreso. El ciclo de vida es estrictamente
// activo → completado → salida; no hay vuelta atrás.
const (
	IngresoActivo     = "activo"
	IngresoCompletado = "completado"
	IngresoSalida     = "salida"
)

// Categorías de ingreso conocidas.
const (
	CategoriaVisita     = "visita"
	CategoriaProveedor  = "proveedor"
	CategoriaServicio   = "servicio"
	CategoriaPaqueteria = "paqueteria"
	CategoriaOtro       = "otro"
)

// Ingreso es un registro de entrada de la caseta (colección eventos).
// Una vez completado, el documento es inmutable salvo por las
// transiciones de estado.
type Ingreso struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ResidencialID     string             `json:"residencialId" bson:"residencialID,omitempty" index:"single"`
	NombreVisitante   string             `json:"nombreVisitante" bson:"nombreVisitante,omitempty"`
	ApellidoVisitante string             `json:"apellidoVisitante" bson:"apellidoVisitante,omitempty"`
	Identificacion    string             `json:"identificacion" bson:"identificacion,omitempty"`
	Categoria         string             `json:"categoria" bson:"categoria,omitempty" default:"visita"`
	Vehiculo          string             `json:"vehiculo" bson:"vehiculo,omitempty"`
	Placa             string             `json:"placa" bson:"placa,omitempty"`
	Calle             string             `json:"calle" bson:"calle,omitempty"`
	NumeroCasa        string             `json:"numeroCasa" bson:"numeroCasa,omitempty"`
	Status            string             `json:"status" bson:"status,omitempty" default:"activo" index:"single"`
	Notas             string             `json:"notas" bson:"notas,omitempty"`
	RegistradoPor     primitive.ObjectID `json:"registradoPor" bson:"registradoPor,omitempty"`
	HoraEntrada       int64              `json:"horaEntrada" bson:"horaEntrada,omitempty"`
	CompletadoAt      int64              `json:"completadoAt" bson:"completadoAt,omitempty"`
	SalidaAt          int64              `json:"salidaAt" bson:"salidaAt,omitempty"`
	CreatedAt         int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// PuedeTransicionar indica si el ingreso admite pasar al estado dado.
func (i Ingreso) PuedeTransicionar(estado string) bool {
	switch i.Status {
	case IngresoActivo:
		return estado == IngresoCompletado
	case IngresoCompletado:
		return estado == IngresoSalida
	}
	return false
}

// EsMutable indica si el ingreso admite cambios de campos. Los registros
// completados solo aceptan transiciones de estado.
func (i Ingreso) EsMutable() bool {
	return i.Status == IngresoActivo
}
