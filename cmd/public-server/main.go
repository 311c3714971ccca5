package main

import (
	"log"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/api/router"
	"portfolio-backend/internal/assistant"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/env"
	"portfolio-backend/internal/geo"
	"portfolio-backend/internal/queue"

	"github.com/go-redis/redis/v8"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	env.Require(env.AWSRegion, env.AWSID, env.AWSSecret)

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	assistantService, err := assistant.New()
	if err != nil {
		log.Fatalf("assistant init failed: %v", err)
	}

	resolver := geo.NewClient(geoCache())

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		router.UtilsRoutes("/api/v1"),
		router.ContactRoutes("/api/v1"),
		router.AssistantRoutes("/api/v1", assistantService, resolver),
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
