// Package mensajedto - DTOs del dominio de mensajería.
package mensajedto

// CrearChatInput abre un hilo de conversación.
type CrearChatInput struct {
	Titulo        string   `json:"titulo" validate:"required,min=1,max=200,no_xss"`
	Participantes []string `json:"participantes" validate:"omitempty,dive,mongodb"`
}

// PublicarMensajeInput agrega un mensaje a un chat.
type PublicarMensajeInput struct {
	Contenido string `json:"contenido" validate:"required,min=1,max=2000,no_xss"`
}

// PublicarAnuncioInput publica un anuncio general del residencial.
// Con porCorreo=true el anuncio también se envía por correo a los
// residentes con email registrado.
type PublicarAnuncioInput struct {
	Titulo    string `json:"titulo" validate:"required,min=1,max=200,no_xss"`
	Contenido string `json:"contenido" validate:"required,min=1,max=5000,no_xss"`
	PorCorreo bool   `json:"porCorreo"`
}
