package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/developerakkoo/Voter-Management-API-sub000/bootstrap"
	"github.com/developerakkoo/Voter-Management-API-sub000/database"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/middleware"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/outbox"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/routes"
)

func init() {
	// .env values override anything already in the environment.
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := database.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	client, err := database.ConnectMongo(cfg)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer database.DisconnectMongo(client)

	db := client.Database(cfg.DBName)
	if err := bootstrap.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	stores := repository.NewStores(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := outbox.NewWorker(stores, cfg.OutboxPollGap)
	go worker.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName: "voter-management-api",
	})
	app.Use(recover.New())
	app.Use(middleware.Metrics())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.Register(app, routes.Deps{
		Client:       client,
		Stores:       stores,
		JWTSecret:    cfg.JWTSecret,
		NotifyOutbox: worker.Notify,
	})

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		_ = app.Shutdown()
	}()

	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
