package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook procesa entradas de log en una goroutine separada para no
// bloquear el flujo de las peticiones. Las entradas se encolan en un
// canal con buffer; si el canal está lleno la entrada se escribe de
// forma síncrona como respaldo.
type AsyncHook struct {
	entries chan *logrus.Entry
	levels  []logrus.Level
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	process func(*logrus.Entry)
}

// NewAsyncHook crea un hook asíncrono con el tamaño de buffer indicado.
// La función process se invoca por cada entrada encolada.
func NewAsyncHook(bufferSize int, levels []logrus.Level, process func(*logrus.Entry)) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	hook := &AsyncHook{
		entries: make(chan *logrus.Entry, bufferSize),
		levels:  levels,
		process: process,
	}
	hook.wg.Add(1)
	go hook.processEntries()
	return hook
}

// processEntries consume el canal hasta que se cierre.
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	for entry := range h.entries {
		h.process(entry)
	}
}

// Levels implementa logrus.Hook.
func (h *AsyncHook) Levels() []logrus.Level {
	if len(h.levels) == 0 {
		return logrus.AllLevels
	}
	return h.levels
}

// Fire encola la entrada sin bloquear. Si el hook ya fue cerrado o el
// buffer está lleno, la entrada se procesa de forma síncrona.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()

	if closed {
		h.process(entry)
		return nil
	}

	// Se copia la entrada: logrus reutiliza el objeto original.
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message

	select {
	case h.entries <- dup:
	default:
		h.process(dup)
	}
	return nil
}

// Close cierra el canal y espera a que se procesen las entradas pendientes.
func (h *AsyncHook) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
}

// FilterHook reenvía a otro logger las entradas cuyo nivel sea igual o
// más severo que minLevel. Se usa para duplicar errores al archivo
// error.log sin importar el logger de origen.
type FilterHook struct {
	target   *logrus.Logger
	minLevel logrus.Level
}

// NewFilterHook crea un hook que duplica entradas hacia target.
func NewFilterHook(target *logrus.Logger, minLevel logrus.Level) *FilterHook {
	return &FilterHook{target: target, minLevel: minLevel}
}

// Levels implementa logrus.Hook.
func (h *FilterHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, int(h.minLevel)+1)
	for l := logrus.PanicLevel; l <= h.minLevel; l++ {
		levels = append(levels, l)
	}
	return levels
}

// Fire implementa logrus.Hook.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.target.WithFields(entry.Data).Log(entry.Level, entry.Message)
	return nil
}
