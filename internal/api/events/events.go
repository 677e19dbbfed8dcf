// Package events provee el mecanismo central de eventos cuando los
// datos cambian vía CRUD. Los services no necesitan sobrescribir cada
// método: BaseServiceMongoImpl emite el evento automáticamente. La
// lógica reactiva (invalidación de caches, notificaciones) se registra
// con OnDataChanged.
package events

import (
	"context"
	"reflect"
	"sync"
)

// Tipos de operación CRUD.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent describe un cambio de datos. Document es el
// documento después del cambio (nil en delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler procesa un evento de cambio de datos.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
)

// OnDataChanged registra un handler. Llamar durante la inicialización.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitDataChanged emite el evento. Se llama desde BaseServiceMongoImpl
// tras cada operación CRUD exitosa. Cada handler corre en su propia
// goroutine; los panics se recuperan para no afectar a los demás.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// El logger puede no estar listo si el evento
					// corre muy temprano.
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}

// GetResidencialIDFromDocument obtiene el campo ResidencialID del
// documento por reflexión. Devuelve cadena vacía si el documento no
// tiene ese campo.
func GetResidencialIDFromDocument(doc interface{}) string {
	if doc == nil {
		return ""
	}
	val := reflect.ValueOf(doc)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return ""
	}
	field := val.FieldByName("ResidencialID")
	if !field.IsValid() || field.Kind() != reflect.String {
		return ""
	}
	return field.String()
}
