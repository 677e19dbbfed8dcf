package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	defer c.Stop()

	_, ok := c.Get("clave")
	assert.False(t, ok)

	c.Set("clave", "valor")
	v, ok := c.Get("clave")
	assert.True(t, ok)
	assert.Equal(t, "valor", v)
	assert.Equal(t, 1, c.Len())

	c.Delete("clave")
	_, ok = c.Get("clave")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_TTLVence(t *testing.T) {
	c := NewCache(20*time.Millisecond, time.Minute)
	defer c.Stop()

	c.Set("clave", "valor")
	_, ok := c.Get("clave")
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get("clave")
	assert.False(t, ok, "la entrada vencida debe tratarse como inexistente")
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetRenuevaTTL(t *testing.T) {
	c := NewCache(50*time.Millisecond, time.Minute)
	defer c.Stop()

	c.Set("clave", 1)
	time.Sleep(30 * time.Millisecond)
	c.Set("clave", 2)
	time.Sleep(30 * time.Millisecond)

	v, ok := c.Get("clave")
	assert.True(t, ok, "reescribir la clave debe renovar su TTL")
	assert.Equal(t, 2, v)
}
