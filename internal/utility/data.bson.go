package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CustomBson permite construir operadores de actualización de MongoDB
// ($set, $push, $unset, $addToSet) a partir de structs tipados.
type CustomBson struct{}

// BsonWrapper envuelve los operadores de actualización básicos.
// Al codificarse a bson produce documentos como { $set: {...} }.
type BsonWrapper struct {
	// Set reemplaza el valor de los campos indicados.
	Set interface{} `json:"$set,omitempty" bson:"$set,omitempty"`

	// Unset elimina los campos indicados. Si el campo no existe la
	// operación no hace nada.
	Unset interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`

	// Push agrega un valor a un campo de tipo arreglo. Si el campo no
	// existe se crea con el valor como único elemento.
	Push interface{} `json:"$push,omitempty" bson:"$push,omitempty"`

	// AddToSet agrega un valor a un arreglo solo si aún no está
	// presente.
	AddToSet interface{} `json:"$addToSet,omitempty" bson:"$addToSet,omitempty"`
}

// ToMap convierte una interface en un mapa vía codificación bson.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}
	itr, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(itr, &stringInterfaceMap); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return stringInterfaceMap, nil
}

// Set construye la consulta { $set: data }.
func (customBson *CustomBson) Set(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{Set: data})
}

// Push construye la consulta { $push: data }.
func (customBson *CustomBson) Push(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{Push: data})
}

// Unset construye la consulta { $unset: data }.
func (customBson *CustomBson) Unset(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{Unset: data})
}

// AddToSet construye la consulta { $addToSet: data }.
func (customBson *CustomBson) AddToSet(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{AddToSet: data})
}
