// Package alertadto - DTOs del dominio de alertas de pánico.
package alertadto

// CrearAlertaInput es el DTO para disparar una alerta de pánico.
// La identidad del usuario y el residencial salen de la sesión.
type CrearAlertaInput struct {
	Mensaje    string `json:"mensaje" validate:"omitempty,max=500,no_xss"`
	Calle      string `json:"calle" validate:"omitempty,max=100,no_xss"`
	NumeroCasa string `json:"numeroCasa" validate:"omitempty,max=20"`
	Telefono   string `json:"telefono" validate:"omitempty,max=20"`
}

// ActualizarEstadoAlertaInput actualiza el estado y/o la marca de
// lectura de una alerta.
type ActualizarEstadoAlertaInput struct {
	Estado string `json:"estado" validate:"omitempty,oneof=activa atendida cerrada"`
	Leida  *bool  `json:"leida" validate:"omitempty"`
}

// ActualizarEstadoAlertaResult reporta si alguna ubicación contenía la
// alerta. ok=false no es un error: la alerta simplemente no se encontró.
type ActualizarEstadoAlertaResult struct {
	Ok bool `json:"ok"`
}
