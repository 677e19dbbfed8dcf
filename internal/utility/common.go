package utility

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"zentry_api/internal/common"
	"zentry_api/internal/logger"
)

// GoProtect ejecuta f protegida contra panics. Si f entra en panic el
// error se registra en lugar de tumbar el proceso.
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logger.GetAppLogger().Errorf("Panic recuperado: %v", err)
		}
	}()
	f()
}

// ConvertStruct convierte un struct en otro pasando por JSON.
// target debe ser un puntero al struct destino.
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonData, target); err != nil {
		return nil, err
	}
	return target, nil
}

// PrettyPrint devuelve la representación JSON indentada de i.
func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}

// UnixMilli devuelve los milisegundos del tiempo dado.
func UnixMilli(t time.Time) int64 {
	return t.Round(time.Millisecond).UnixNano() / (int64(time.Millisecond) / int64(time.Nanosecond))
}

// CurrentTimeInMilli devuelve el timestamp actual en milisegundos.
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}

// LogWarning registra una advertencia con pares clave/valor adicionales.
func LogWarning(msg string, args ...interface{}) {
	fields := make(map[string]interface{})
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				fields[key] = args[i+1]
			}
		}
	}
	logger.GetAppLogger().WithFields(fields).Warn(msg)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail verifica el formato de un correo electrónico.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return common.ErrInvalidFormat
	}
	return nil
}

// Describe imprime el tipo y valor de la interface (uso en depuración).
func Describe(t interface{}) {
	fmt.Printf("Interface type %T value %v\n", t, t)
}
