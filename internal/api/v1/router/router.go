package router

import (
	"app/internal/api/v1/handler"
	"app/internal/catalog"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/ratelimit"
	"app/internal/recommender"
	"app/internal/repository"
	"app/internal/service"
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// In a development environment, ensure SSL is disabled for local testing.
	// In production, the connection string should be provided with the
	// correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	// For non-development environments that use a transaction pooler like
	// pgbouncer, use the simple query protocol to avoid issues with
	// server-side prepared statements.
	if cfg.Environment != "development" {
		if !strings.Contains(dsn, "prefer_simple_protocol") {
			separator := "&"
			if !strings.Contains(dsn, "?") {
				separator = "?"
			}
			dsn += separator + "prefer_simple_protocol=true"
		}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Msgf("Failed to open DB connection: %v", err)
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Msgf("Failed to ping DB: %v", err)
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// Set reasonable connection pool limits
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Build the catalog source. The CSV is re-read per request from either
	// a local file or an S3-compatible bucket.
	var catalogSource catalog.Source
	switch cfg.CatalogSource {
	case "s3":
		s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
			awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
		)
		if err != nil {
			logger.Error().Msgf("Failed to load S3 config: %v", err)
			return nil, nil, err
		}
		s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		})
		catalogSource = catalog.NewS3Source(s3Client, cfg.S3Bucket, cfg.CatalogObjectKey)
	default:
		catalogSource = catalog.NewFileSource(cfg.CatalogPath)
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Optional Pub/Sub publisher for view analytics events
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" && cfg.PubSubViewTopic != "" {
		p, err := pubsub.NewPublisher(context.Background(), cfg)
		if err != nil {
			logger.Error().Msgf("Failed to create Pub/Sub publisher: %v", err)
			return nil, nil, err
		}
		publisher = p
	}

	// 5. Optional remote model backend
	var remote *recommender.RemoteClient
	if cfg.RecommenderBaseURL != "" {
		remote = recommender.NewRemoteClient(cfg.RecommenderBaseURL, time.Duration(cfg.RecommenderTimeoutSec)*time.Second, logger)
	}

	// 6. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	viewRepo := repository.NewViewRepo(db)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, sessionTTL)
	userSvc := service.NewUserService(userRepo)
	courseSvc := service.NewCourseService(catalogSource, viewRepo, publisher, cfg.PubSubViewTopic, logger)
	recSvc := service.NewRecommendationService(viewRepo, catalogSource, remote, logger)

	signupLimiter := ratelimit.NewFixedWindow(cfg.SignupRateLimit, time.Duration(cfg.SignupRateWindowMin)*time.Minute)

	authHandler := handler.NewAuthHandler(authSvc, validate, signupLimiter, logger)
	userHandler := handler.NewUserHandler(userSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, logger)
	recHandler := handler.NewRecommendationHandler(recSvc, logger)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	// 8. Create ServeMux router
	mux := http.NewServeMux()

	// Create a subrouter for API v1 with the /v1 prefix
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	recHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Liveness: the store must be reachable for any personalized operation.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Add Swagger documentation
	mux.HandleFunc("/swagger/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger/swagger.json")
	})
	mux.Handle("/swagger/", http.StripPrefix("/swagger/", http.FileServer(http.Dir("./docs/swagger/swagger-ui"))))

	// Redirect all other root-level requests to /v1/{path}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Avoid redirect loops by checking if already under /v1 or /swagger
		if strings.HasPrefix(r.URL.Path, "/v1/") || strings.HasPrefix(r.URL.Path, "/swagger/") {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/v1"+r.URL.Path, http.StatusMovedPermanently)
	})

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible object stores that the catalog bucket may live on.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		// Only remove the middleware if it exists.
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
