// Package common define la taxonomía de errores y los códigos de estado
// compartidos por toda la aplicación.
package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Éxito
	StatusCreated   = 201 // Creado con éxito
	StatusAccepted  = 202 // Solicitud aceptada
	StatusNoContent = 204 // Éxito sin contenido

	// Client Error Codes (4xx)
	StatusBadRequest       = 400 // Solicitud inválida
	StatusUnauthorized     = 401 // No autenticado
	StatusForbidden        = 403 // Sin permiso de acceso
	StatusNotFound         = 404 // Recurso no encontrado
	StatusMethodNotAllowed = 405 // Método HTTP no soportado
	StatusConflict         = 409 // Conflicto de datos
	StatusTooManyRequests  = 429 // Demasiadas solicitudes

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Error del servidor
	StatusNotImplemented      = 501 // Funcionalidad no implementada
	StatusServiceUnavailable  = 503 // Servicio no disponible
)

// Response Messages
const (
	MsgSuccess = "Operación exitosa"
	MsgCreated = "Creado con éxito"

	MsgBadRequest   = "Solicitud inválida"
	MsgUnauthorized = "Inicie sesión para continuar"
	MsgForbidden    = "Sin permiso de acceso"
	MsgNotFound     = "Recurso no encontrado"

	MsgTokenMissing = "Falta el token de autenticación"
	MsgTokenInvalid = "Token inválido"
	MsgTokenExpired = "El token ha expirado"

	MsgValidationError = "Datos inválidos"
	MsgDatabaseError   = "Error al interactuar con la base de datos"
	MsgInvalidFormat   = "Formato de datos inválido"
)

// ErrorCode define un código de error detallado
type ErrorCode struct {
	Code        string // Código (por ejemplo: AUTH_001)
	Category    string // Categoría (por ejemplo: Authentication)
	SubCategory string // Subcategoría (por ejemplo: Token)
	Description string // Descripción detallada
}

// Códigos de error organizados por categoría
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Error interno del sistema",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "Error de autenticación general",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Error relacionado con el token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Error en las credenciales de acceso",
	}

	ErrCodeAuthRole = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authentication",
		SubCategory: "Role",
		Description: "Error relacionado con el rol del usuario",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "Error de validación general",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Error en los datos de entrada",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Error de formato de datos",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Error de base de datos general",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Error de conexión a la base de datos",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Error al consultar los datos",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusiness = ErrorCode{
		Code:        "BIZ",
		Category:    "Business",
		SubCategory: "General",
		Description: "Error de lógica de negocio general",
	}

	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Error de estado de negocio",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Error en la operación de negocio",
	}

	// Storage Errors (STG_xxx)
	ErrCodeStorage = ErrorCode{
		Code:        "STG_001",
		Category:    "Storage",
		SubCategory: "Object",
		Description: "Error al interactuar con el almacenamiento de objetos",
	}
)

// Error define la estructura de un error detallado
type Error struct {
	Code       ErrorCode // Código de error detallado
	Message    string    // Mensaje del error
	StatusCode int       // HTTP status code
	Details    any       // Información adicional sobre el error
}

// Error devuelve el mensaje del error
func (e *Error) Error() string {
	return e.Message
}

// Is compara contra el error objetivo (soporta errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}

	return false
}

// NewError crea un error nuevo con toda la información
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Errores predefinidos
var (
	// Authentication Errors
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Credenciales de acceso incorrectas", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, "La sesión ha expirado", StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, "Token inválido", StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, "Falta el token de autenticación", StatusUnauthorized, nil)
	ErrUserNotFound       = NewError(ErrCodeAuthCredentials, "No se encontró el usuario", StatusNotFound, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Datos de entrada inválidos", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Formato de datos inválido", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Falta información obligatoria", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "No se encontraron datos", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "El dato ya existe", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Error de conexión a la base de datos", StatusServiceUnavailable, nil)

	// Errores MongoDB por familia de códigos
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "Error de conexión con MongoDB", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeDatabaseConnection, "Error de autenticación con MongoDB", StatusServiceUnavailable, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "Error de consulta en MongoDB", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "Error de escritura en MongoDB", StatusInternalServerError, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "Error interno de MongoDB", StatusInternalServerError, nil)
)

// ConvertMongoError traduce errores del driver de MongoDB a la taxonomía propia.
// ErrNotFound pasa sin convertir para que errors.Is siga funcionando aguas arriba.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}

	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	// Cualquier otro error del driver se reporta como error de consulta genérico
	return NewError(ErrCodeDatabaseQuery, err.Error(), StatusInternalServerError, err)
}
