package utility

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormatBytes convierte un número de bytes en una cadena legible
// (KB, MB, GB, ...).
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// String2ObjectID convierte una cadena hexadecimal en ObjectID.
// Devuelve NilObjectID si la cadena no es válida.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// MapToJSON convierte un mapa en su representación JSON.
func MapToJSON(m map[string]interface{}) (string, error) {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("error al convertir map a JSON: %v", err)
	}
	return string(jsonBytes), nil
}

// JSONToMap convierte una cadena JSON en un mapa.
func JSONToMap(jsonStr string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("error al convertir JSON a map: %v", err)
	}
	return result, nil
}

// ContentHash devuelve el hash SHA-256 de la representación JSON del
// valor. Se usa para detectar si el contenido de un documento cambió
// realmente entre dos lecturas.
func ContentHash(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
