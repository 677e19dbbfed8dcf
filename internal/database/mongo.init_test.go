package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndexTag(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		result := parseIndexTag("single")
		assert.Len(t, result, 1)
		_, ok := result[0]["single"]
		assert.True(t, ok)
	})

	t.Run("unique con sparse", func(t *testing.T) {
		result := parseIndexTag("unique,sparse")
		assert.Len(t, result, 1)
		_, unique := result[0]["unique"]
		_, sparse := result[0]["sparse"]
		assert.True(t, unique)
		assert.True(t, sparse)
	})

	t.Run("varias configuraciones", func(t *testing.T) {
		result := parseIndexTag("single;compound:busqueda_residencial;ttl:86400")
		assert.Len(t, result, 3)
		assert.Equal(t, "busqueda_residencial", result[1]["compound"])
		assert.Equal(t, "86400", result[2]["ttl"])
	})
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, 1, parseOrder("single"))
	assert.Equal(t, 1, parseOrder("single;order:1"))
	assert.Equal(t, -1, parseOrder("single;order:-1"))
}

func TestIsIndexExistsError(t *testing.T) {
	assert.False(t, isIndexExistsError(nil))
	assert.True(t, isIndexExistsError(errString("Index already exists with a different name")))
	assert.True(t, isIndexExistsError(errString("E11000 duplicate key error")))
	assert.False(t, isIndexExistsError(errString("connection refused")))
}

type errString string

func (e errString) Error() string { return string(e) }
