// Package storagedto - DTOs del dominio de documentos.
package storagedto

// URLDescargaInput solicita la URL firmada de descarga de un documento.
type URLDescargaInput struct {
	Ruta string `json:"ruta" validate:"required,max=500"`
}

// EliminarDocumentoInput solicita el borrado de un documento por ruta.
type EliminarDocumentoInput struct {
	Ruta string `json:"ruta" validate:"required,max=500"`
}

// ExisteDocumentoInput consulta si un documento existe.
type ExisteDocumentoInput struct {
	Ruta string `json:"ruta" validate:"required,max=500"`
}

// DocumentoSubido es la respuesta al subir un documento.
type DocumentoSubido struct {
	Ruta string `json:"ruta"`
}

// ExisteDocumentoResult es la respuesta simplificada de existencia.
type ExisteDocumentoResult struct {
	Existe bool `json:"existe"`
}
