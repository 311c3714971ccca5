package env

import (
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
	AdminSecretKey   = "ADMIN_SECRET"
	AuthRedisURL     = "AUTH_REDIS_URL"
	AuthRedisPass    = "AUTH_REDIS_PASS"
	GeoRedisURL      = "GEO_REDIS_URL"
	GeoRedisPass     = "GEO_REDIS_PASS"
	GeoAPIURL        = "GEO_API_URL"
	AIProvider       = "AI_PROVIDER"
	OpenAIAPIKey     = "OPENAI_API_KEY"
	OpenAIModel      = "OPENAI_MODEL"
	FireworksAPIKey  = "FIREWORKS_API_KEY"
	FireworksModel   = "FIREWORKS_MODEL"
	CerebrasAPIKey   = "CEREBRAS_API_KEY"
	CerebrasModel    = "CEREBRAS_MODEL"
	OwnerName        = "OWNER_NAME"
	WebUrl           = "WEB_URL"
)

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}

// Require is called from each server main instead of a package init so tests
// can import packages that read env without a fully configured environment.
func Require(keys ...string) {
	for _, key := range keys {
		if os.Getenv(key) == "" {
			panic("env: required environment variable not set: " + key)
		}
	}
}
