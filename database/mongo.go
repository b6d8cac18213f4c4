package database

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Config is everything the server reads from the environment. godotenv has
// already loaded .env by the time LoadConfig runs.
type Config struct {
	MongoURI      string
	DBName        string
	Port          string
	JWTSecret     string
	OutboxPollGap time.Duration
}

func LoadConfig() Config {
	cfg := Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		DBName:        os.Getenv("DB_NAME"),
		Port:          os.Getenv("PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OutboxPollGap: 2 * time.Second,
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.DBName == "" {
		cfg.DBName = "voter_management"
	}
	if gap := os.Getenv("OUTBOX_POLL_SECONDS"); gap != "" {
		if d, err := time.ParseDuration(gap + "s"); err == nil && d > 0 {
			cfg.OutboxPollGap = d
		}
	}
	return cfg
}

// ConnectMongo dials the cluster and pings the primary before returning.
func ConnectMongo(cfg Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	slog.Info("connected to mongodb", "db", cfg.DBName)
	return client, nil
}

func DisconnectMongo(client *mongo.Client) {
	if err := client.Disconnect(context.Background()); err != nil {
		slog.Error("mongo disconnect failed", "err", err)
	}
}
