package panelsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchSizeEfectivo(t *testing.T) {
	assert.Equal(t, 7, batchSizeEfectivo(7))
	assert.Equal(t, 1, batchSizeEfectivo(1))

	// Valores no positivos caen al tamaño por defecto
	assert.Equal(t, batchSizeDefecto, batchSizeEfectivo(0))
	assert.Equal(t, batchSizeDefecto, batchSizeEfectivo(-3))
}
