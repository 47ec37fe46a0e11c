package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`

	// JWTSecret may be left empty when JWTSecretName is set, in which case
	// the secret is fetched from GCP Secret Manager at startup.
	JWTSecret       string `envconfig:"JWT_SECRET"`
	JWTSecretName   string `envconfig:"JWT_SECRET_NAME"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"72"`

	// Catalog settings. The CSV is re-read on every request; the source is
	// either a local file or an object in an S3-compatible bucket.
	CatalogSource    string `envconfig:"CATALOG_SOURCE" default:"file"`
	CatalogPath      string `envconfig:"CATALOG_PATH" default:"courses.csv"`
	CatalogObjectKey string `envconfig:"CATALOG_OBJECT_KEY" default:"courses.csv"`
	S3URL            string `envconfig:"S3_URL"`
	S3Bucket         string `envconfig:"S3_BUCKET"`
	S3Region         string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey      string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey      string `envconfig:"S3_SECRET_KEY"`

	// Optional external model backend. When set, it is tried before the
	// in-process scoring engine and the engine serves as the fallback.
	RecommenderBaseURL    string `envconfig:"RECOMMENDER_BASE_URL"`
	RecommenderTimeoutSec int    `envconfig:"RECOMMENDER_TIMEOUT_SEC" default:"10"`

	// GCP settings (view analytics events, secret loading). All optional.
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	GCPCredentialsFile string `envconfig:"GCP_CREDENTIALS_FILE"`
	PubSubViewTopic    string `envconfig:"PUBSUB_VIEW_TOPIC"`

	// Signup rate limiting (per client IP, fixed window).
	SignupRateLimit     int `envconfig:"SIGNUP_RATE_LIMIT" default:"5"`
	SignupRateWindowMin int `envconfig:"SIGNUP_RATE_WINDOW_MIN" default:"15"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
