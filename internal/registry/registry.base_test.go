package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("uno", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	v, exists := r.Get("uno")
	assert.True(t, exists)
	assert.Equal(t, 1, v)

	// Reregistrar sobrescribe y reporta isNew=false
	isNew, err = r.Register("uno", 11)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, _ = r.Get("uno")
	assert.Equal(t, 11, v)

	_, exists = r.Get("dos")
	assert.False(t, exists)
}

func TestRegistry_NombreVacio(t *testing.T) {
	r := NewRegistry[string]()

	_, err := r.Register("", "x")
	assert.Error(t, err)

	_, err = r.GetOrCreate("", func() (string, error) { return "x", nil })
	assert.Error(t, err)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[string]()
	llamadas := 0

	v, err := r.GetOrCreate("clave", func() (string, error) {
		llamadas++
		return "creado", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "creado", v)

	// La segunda llamada devuelve el existente sin invocar el creator
	v, err = r.GetOrCreate("clave", func() (string, error) {
		llamadas++
		return "otro", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "creado", v)
	assert.Equal(t, 1, llamadas)

	_, err = r.GetOrCreate("falla", func() (string, error) {
		return "", errors.New("no se pudo crear")
	})
	assert.Error(t, err)
	_, exists := r.Get("falla")
	assert.False(t, exists, "un creator fallido no debe dejar entrada")
}

func TestRegistry_RemoveYLen(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("uno", 1)
	r.Register("dos", 2)

	assert.Equal(t, 2, r.Len())
	assert.ElementsMatch(t, []string{"uno", "dos"}, r.Names())

	r.Remove("uno")
	assert.Equal(t, 1, r.Len())
	_, exists := r.Get("uno")
	assert.False(t, exists)
}
