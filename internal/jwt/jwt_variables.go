package jwt

import (
	"time"

	"portfolio-backend/internal/env"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

const RefreshTokenTTL = 24 * 30 * time.Hour

const (
	RoleAdmin Role = iota
)

var RoleSecrets = map[Role]string{}

func init() {
	RoleSecrets[RoleAdmin] = env.Get(env.AdminSecretKey)

	// redis.NewClient does not dial until first use, so this is safe to run
	// in environments without Redis (tests override the token issuer).
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.AuthRedisURL),
		Password: env.Get(env.AuthRedisPass),
		DB:       0,
	})
}
