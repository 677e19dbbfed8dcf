// Package registry implementa un registry genérico y thread-safe para
// administrar instancias singleton dentro de la aplicación (colecciones de
// MongoDB, bases de datos, clientes externos).
package registry

import (
	"fmt"
	"sync"

	"zentry_api/internal/common"
)

// Registry es una implementación genérica del patrón registry.
// El type parameter T permite administrar cualquier tipo de objeto.
// La seguridad entre goroutines se garantiza con sync.RWMutex.
type Registry[T any] struct {
	items map[string]T // Mapa de items por nombre
	mu    sync.RWMutex // Mutex para acceso concurrente
}

// NewRegistry crea un registry nuevo para el tipo T.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register registra un item nuevo. Si el nombre ya existe, lo sobrescribe.
//
// Returns:
//   - isNew: true si es un item nuevo, false si sobrescribió uno existente
//   - err: error si el nombre está vacío
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get devuelve el item por nombre y un booleano indicando si existe.
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// GetOrCreate devuelve el item por nombre; si no existe lo crea con creator.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	if name == "" {
		return item, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.items[name]; exists {
		return existing, nil
	}

	created, err := creator()
	if err != nil {
		return item, err
	}
	r.items[name] = created
	return created, nil
}

// Remove elimina un item del registry.
func (r *Registry[T]) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, name)
}

// Names devuelve los nombres registrados.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// Len devuelve la cantidad de items registrados.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
