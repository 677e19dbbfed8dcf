// Package tagdto - DTOs del dominio de tags vehiculares.
package tagdto

// TagCreateInput es el DTO para registrar un tag vehicular.
// El houseID no se recibe: se deriva de residencial + calle + número.
type TagCreateInput struct {
	NumeroTarjeta string   `json:"numeroTarjeta" bson:"numeroTarjeta" validate:"required,min=4,max=50"`
	ResidencialID string   `json:"residencialId" bson:"residencialID" validate:"omitempty,max=50"`
	Calle         string   `json:"calle" bson:"calle" validate:"required,max=100,no_xss"`
	NumeroCasa    string   `json:"numeroCasa" bson:"numeroCasa" validate:"required,max=20"`
	UsuarioID     string   `json:"usuarioId" bson:"usuarioId" transform:"str_objectid,optional" validate:"omitempty,mongodb"`
	Vehiculo      string   `json:"vehiculo" bson:"vehiculo" validate:"omitempty,max=100,no_xss"`
	Placa         string   `json:"placa" bson:"placa" validate:"omitempty,placa"`
	Paneles       []string `json:"paneles" bson:"paneles" validate:"required,min=1,dive,max=50"`
}

// TagUpdateInput es el DTO para actualizar los datos de un tag.
// El estado se cambia por el endpoint de estado, no por esta vía.
type TagUpdateInput struct {
	Vehiculo string   `json:"vehiculo" bson:"vehiculo,omitempty" validate:"omitempty,max=100,no_xss"`
	Placa    string   `json:"placa" bson:"placa,omitempty" validate:"omitempty,placa"`
	Paneles  []string `json:"paneles" bson:"paneles,omitempty" validate:"omitempty,min=1,dive,max=50"`
}

// CambiarEstadoTagInput cambia el estado deseado del tag; el cambio
// encola un trabajo de sincronización por panel.
type CambiarEstadoTagInput struct {
	Status string `json:"status" validate:"required,oneof=active disabled pending"`
}
