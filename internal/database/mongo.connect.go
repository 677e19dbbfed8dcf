package database

import (
	"context"
	"fmt"
	"time"

	"zentry_api/config"
	"zentry_api/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetInstance crea y devuelve un cliente de MongoDB conectado según la
// configuración del servidor. Falla si la conexión o el ping no
// responden dentro del timeout.
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("la URL de conexión a la base de datos está vacía")
	}

	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a MongoDB: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()

	if err := client.Ping(ctxPing, nil); err != nil {
		return nil, fmt.Errorf("no se pudo hacer ping a MongoDB: %w", err)
	}

	logger.GetAppLogger().Info("Conexión a MongoDB establecida")
	return client, nil
}

// CloseInstance cierra la conexión del cliente de MongoDB.
func CloseInstance(client *mongo.Client) error {
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.GetAppLogger().WithError(err).Error("No se pudo desconectar el cliente de MongoDB")
		return err
	}
	logger.GetAppLogger().Info("Desconexión de MongoDB completada")
	return nil
}
