package main

import (
	"context"
	"log"
	"os"

	"github.com/YC815/Miaoli/cmd"
	"github.com/YC815/Miaoli/internal/container"
	"github.com/YC815/Miaoli/internal/database"
	"github.com/YC815/Miaoli/internal/logger"
	"github.com/YC815/Miaoli/internal/metrics"
	"github.com/YC815/Miaoli/internal/middleware"
	"github.com/YC815/Miaoli/internal/routes"
	"github.com/YC815/Miaoli/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}
}

// version is stamped by the build (-ldflags "-X main.version=...").
var version = "dev"

func main() {
	middleware.SetVersion(version)

	if len(os.Args) > 1 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		cmd.Execute(ctx)
		return
	}

	zapLog := logger.NewLogger()
	defer zapLog.Sync()

	store, cleanup, err := openStore()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer cleanup()

	appContainer, err := container.NewAppContainer(store, zapLog)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware(zapLog))
	router.Use(metrics.Middleware())

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}
	if err := router.Run(host); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore picks the persistence backend from STORE_DRIVER. The file store is
// the default so the service runs with no external services at all.
func openStore() (storage.Gateway, func(), error) {
	noop := func() {}

	switch os.Getenv("STORE_DRIVER") {
	case "postgres":
		db, err := database.NewPostgresConnection(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, noop, err
		}
		return storage.NewPostgresStore(db), func() { db.Close() }, nil
	case "sqlite":
		path := os.Getenv("STORE_PATH")
		if path == "" {
			path = "inventory.db"
		}
		store, err := storage.NewSQLiteStore(path)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil
	case "memory":
		return storage.NewMemoryStore(), noop, nil
	default:
		path := os.Getenv("STORE_PATH")
		if path == "" {
			path = "inventory.json"
		}
		return storage.NewFileStore(path), noop, nil
	}
}
