package db

import (
	"context"
	"fmt"
	"time"

	"movierec/internal/config"
	"movierec/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo agrupa el cliente y la base configurada.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func InitMongo(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("[mongo] MONGO_URI no está seteado")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("[mongo] error conectando: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("[mongo] ping falló: %w", err)
	}

	logging.Info().Str("db", cfg.MongoDB).Msg("[mongo] conectado")
	return &Mongo{Client: client, DB: client.Database(cfg.MongoDB)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
