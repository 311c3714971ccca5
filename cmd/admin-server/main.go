package main

import (
	"log"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/api/router"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/env"
	"portfolio-backend/internal/geo"
	"portfolio-backend/internal/queue"

	"github.com/go-redis/redis/v8"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	env.Require(env.AWSRegion, env.AWSID, env.AWSSecret, env.AdminSecretKey, env.AuthRedisURL)

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	resolver := geo.NewClient(geoCache())

	server := api.NewAPIServer(
		":84",
		queueManager,
		db,
		router.UtilsRoutes("/api/admin/v1"),
		router.AdminRoutes("/api/admin/v1", resolver),
	)

	server.Run()
}

func geoCache() *redis.Client {
	addr := env.Get(env.GeoRedisURL)
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: env.Get(env.GeoRedisPass),
		DB:       0,
	})
}
