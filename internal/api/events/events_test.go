package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitDataChanged_LlegaATodosLosHandlers(t *testing.T) {
	recibidoA := make(chan DataChangeEvent, 1)
	recibidoB := make(chan DataChangeEvent, 1)

	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		recibidoA <- e
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		recibidoB <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "residenciales",
		Operation:      OpInsert,
	})

	for _, ch := range []chan DataChangeEvent{recibidoA, recibidoB} {
		select {
		case e := <-ch:
			assert.Equal(t, "residenciales", e.CollectionName)
			assert.Equal(t, OpInsert, e.Operation)
		case <-time.After(time.Second):
			t.Fatal("el handler no recibió el evento")
		}
	}
}

func TestEmitDataChanged_PanicNoAfectaOtros(t *testing.T) {
	recibido := make(chan struct{}, 1)

	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panics" {
			panic("handler roto")
		}
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panics" {
			recibido <- struct{}{}
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "panics", Operation: OpDelete})

	select {
	case <-recibido:
	case <-time.After(time.Second):
		t.Fatal("el panic de un handler bloqueó a los demás")
	}
}

func TestGetResidencialIDFromDocument(t *testing.T) {
	type conCampo struct {
		ResidencialID string
	}
	type sinCampo struct {
		Nombre string
	}
	type campoNoString struct {
		ResidencialID int
	}

	assert.Equal(t, "LOMAS-01", GetResidencialIDFromDocument(conCampo{ResidencialID: "LOMAS-01"}))
	assert.Equal(t, "LOMAS-01", GetResidencialIDFromDocument(&conCampo{ResidencialID: "LOMAS-01"}))
	assert.Equal(t, "", GetResidencialIDFromDocument(sinCampo{Nombre: "x"}))
	assert.Equal(t, "", GetResidencialIDFromDocument(campoNoString{ResidencialID: 7}))
	assert.Equal(t, "", GetResidencialIDFromDocument(nil))
	assert.Equal(t, "", GetResidencialIDFromDocument((*conCampo)(nil)))
	assert.Equal(t, "", GetResidencialIDFromDocument("una cadena"))
}
