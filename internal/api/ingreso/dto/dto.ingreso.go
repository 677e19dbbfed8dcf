// Package ingresodto - DTOs del dominio de ingresos.
package ingresodto

// IngresoCreateInput es el DTO para registrar un ingreso en caseta.
type IngresoCreateInput struct {
	ResidencialID     string `json:"residencialId" bson:"residencialID" validate:"omitempty,max=50"`
	NombreVisitante   string `json:"nombreVisitante" bson:"nombreVisitante" validate:"required,min=2,max=100,no_xss"`
	ApellidoVisitante string `json:"apellidoVisitante" bson:"apellidoVisitante" validate:"omitempty,max=100,no_xss"`
	Identificacion    string `json:"identificacion" bson:"identificacion" validate:"omitempty,max=50"`
	Categoria         string `json:"categoria" bson:"categoria" validate:"omitempty,oneof=visita proveedor servicio paqueteria otro"`
	Vehiculo          string `json:"vehiculo" bson:"vehiculo" validate:"omitempty,max=100,no_xss"`
	Placa             string `json:"placa" bson:"placa" validate:"omitempty,placa"`
	Calle             string `json:"calle" bson:"calle" validate:"required,max=100,no_xss"`
	NumeroCasa        string `json:"numeroCasa" bson:"numeroCasa" validate:"required,max=20"`
	Notas             string `json:"notas" bson:"notas" validate:"omitempty,max=500,no_xss"`
}

// IngresoUpdateInput es el DTO para corregir los datos de un ingreso
// aún activo. Los registros completados no admiten cambios de campos.
type IngresoUpdateInput struct {
	NombreVisitante   string `json:"nombreVisitante" bson:"nombreVisitante,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	ApellidoVisitante string `json:"apellidoVisitante" bson:"apellidoVisitante,omitempty" validate:"omitempty,max=100,no_xss"`
	Identificacion    string `json:"identificacion" bson:"identificacion,omitempty" validate:"omitempty,max=50"`
	Categoria         string `json:"categoria" bson:"categoria,omitempty" validate:"omitempty,oneof=visita proveedor servicio paqueteria otro"`
	Vehiculo          string `json:"vehiculo" bson:"vehiculo,omitempty" validate:"omitempty,max=100,no_xss"`
	Placa             string `json:"placa" bson:"placa,omitempty" validate:"omitempty,placa"`
	Calle             string `json:"calle" bson:"calle,omitempty" validate:"omitempty,max=100,no_xss"`
	NumeroCasa        string `json:"numeroCasa" bson:"numeroCasa,omitempty" validate:"omitempty,max=20"`
	Notas             string `json:"notas" bson:"notas,omitempty" validate:"omitempty,max=500,no_xss"`
}
