// Package residencialdto - DTOs del dominio residencial.
package residencialdto

// ResidencialCreateInput es el DTO para crear un residencial.
// El residencialID es el código de negocio que los demás dominios usan
// para aislar datos; es obligatorio desde el alta.
type ResidencialCreateInput struct {
	ResidencialID string   `json:"residencialId" bson:"residencialID" validate:"required,min=3,max=50,no_xss"`
	Nombre        string   `json:"nombre" bson:"nombre" validate:"required,min=2,max=200,no_xss"`
	Direccion     string   `json:"direccion" bson:"direccion" validate:"omitempty,max=300,no_xss"`
	Ciudad        string   `json:"ciudad" bson:"ciudad" validate:"omitempty,max=100,no_xss"`
	Estado        string   `json:"estado" bson:"estado" validate:"omitempty,max=100,no_xss"`
	CodigoPostal  string   `json:"codigoPostal" bson:"codigoPostal" validate:"omitempty,max=10"`
	Telefono      string   `json:"telefono" bson:"telefono" validate:"omitempty,max=20"`
	TotalCasas    int      `json:"totalCasas" bson:"totalCasas" validate:"omitempty,min=0"`
	Calles        []string `json:"calles" bson:"calles" validate:"omitempty,dive,max=100"`
	Activo        bool     `json:"activo" bson:"activo"`
}

// ResidencialUpdateInput es el DTO para actualizar un residencial.
// El residencialID no se actualiza por esta vía: cambiar el código de
// negocio dejaría huérfanos los datos que ya lo referencian.
type ResidencialUpdateInput struct {
	Nombre       string   `json:"nombre" bson:"nombre,omitempty" validate:"omitempty,min=2,max=200,no_xss"`
	Direccion    string   `json:"direccion" bson:"direccion,omitempty" validate:"omitempty,max=300,no_xss"`
	Ciudad       string   `json:"ciudad" bson:"ciudad,omitempty" validate:"omitempty,max=100,no_xss"`
	Estado       string   `json:"estado" bson:"estado,omitempty" validate:"omitempty,max=100,no_xss"`
	CodigoPostal string   `json:"codigoPostal" bson:"codigoPostal,omitempty" validate:"omitempty,max=10"`
	Telefono     string   `json:"telefono" bson:"telefono,omitempty" validate:"omitempty,max=20"`
	TotalCasas   int      `json:"totalCasas" bson:"totalCasas,omitempty" validate:"omitempty,min=0"`
	Calles       []string `json:"calles" bson:"calles,omitempty" validate:"omitempty,dive,max=100"`
	Activo       *bool    `json:"activo" bson:"activo,omitempty"`
}

// GuardiaCreateInput es el DTO para dar de alta un guardia en la caseta.
type GuardiaCreateInput struct {
	Nombre   string `json:"nombre" bson:"nombre" validate:"required,min=2,max=100,no_xss"`
	Apellido string `json:"apellido" bson:"apellido" validate:"omitempty,max=100,no_xss"`
	Telefono string `json:"telefono" bson:"telefono" validate:"omitempty,max=20"`
	Turno    string `json:"turno" bson:"turno" validate:"omitempty,oneof=matutino vespertino nocturno"`
}

// AreaComunCreateInput es el DTO para registrar un área común.
type AreaComunCreateInput struct {
	Nombre      string `json:"nombre" bson:"nombre" validate:"required,min=2,max=100,no_xss"`
	Descripcion string `json:"descripcion" bson:"descripcion" validate:"omitempty,max=500,no_xss"`
	Capacidad   int    `json:"capacidad" bson:"capacidad" validate:"omitempty,min=0"`
	Horario     string `json:"horario" bson:"horario" validate:"omitempty,max=100"`
}
