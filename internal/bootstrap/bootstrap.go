package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/edusphere/backend/internal/app/controllers"
	appRoutes "github.com/edusphere/backend/internal/app/routes"
	appServices "github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/config"
	"github.com/edusphere/backend/internal/db"
	"github.com/edusphere/backend/internal/docstore"
	appMiddleware "github.com/edusphere/backend/internal/middleware"
	"github.com/edusphere/backend/internal/pkg/logger"
	"github.com/edusphere/backend/internal/pkg/websocket"
	"github.com/edusphere/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store               docstore.Store
	Services            *appServices.Services
	ClassroomController *appControllers.ClassroomController
	CommunityController *appControllers.CommunityController
	PostController      *appControllers.PostController
	ChatController      *appControllers.ChatController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Hub                 *websocket.Hub
	WSHandler           *websocket.Handler
	MessageHandler      *websocket.MessageHandler
	Logger              zerolog.Logger

	// Backend handles for shutdown; nil unless the matching driver is active.
	Postgres *db.PostgresDB
	Mongo    *db.MongoDB
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore selects and connects the document store backing per
// config.Database.Driver. The returned Dependencies carries the backend
// handles so the server can close them on shutdown.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	switch strings.ToLower(cfg.Database.Driver) {
	case config.DriverMemory, "":
		lgr.Info().Msg("Using in-memory document store")
		deps.Store = docstore.NewMemoryStore(lgr)

	case config.DriverMongo:
		lgr.Info().Str("uri", cfg.Database.Mongo.URI).Msg("Connecting to MongoDB document store")
		mongoDB, err := db.NewMongoDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		deps.Mongo = mongoDB
		deps.Store = docstore.NewMongoStore(mongoDB.Database.Collection("documents"), lgr)

	case config.DriverPostgres:
		lgr.Info().Str("host", cfg.Database.Postgres.Host).Msg("Connecting to PostgreSQL document store")
		pgDB, err := db.NewPostgresDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := docstore.NewPostgresStore(pgDB.Pool, lgr)
		if err := store.EnsureSchema(context.Background()); err != nil {
			pgDB.Close()
			return nil, fmt.Errorf("failed to prepare documents schema: %w", err)
		}
		deps.Postgres = pgDB
		deps.Store = store

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	return deps, nil
}

// BuildDependencies initializes services, controllers and the websocket hub
// over the selected store.
func BuildDependencies(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*Dependencies, error) {
	deps.Services = appServices.New(deps.Store, lgr)

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	deps.MessageHandler = websocket.NewMessageHandler(deps.Services.Chat, deps.Hub, lgr)
	deps.MessageHandler.Start()

	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(cfg, lgr)

	deps.ClassroomController = appControllers.NewClassroomController(deps.Services.Classrooms)
	deps.CommunityController = appControllers.NewCommunityController(deps.Services.Communities)
	deps.PostController = appControllers.NewPostController(deps.Services.Posts)
	deps.ChatController = appControllers.NewChatController(deps.Services.Chat, deps.Hub)

	if cfg.Seed.Enabled && !cfg.IsProduction() {
		if err := seed.CreateDefaultData(context.Background(), deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create seed data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins()
	corsConfig.AllowCredentials = cfg.CORS.Credentials
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders,
		appMiddleware.HeaderUserID, appMiddleware.HeaderUserName, appMiddleware.HeaderUserRole)
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.ClassroomController,
		deps.CommunityController,
		deps.PostController,
		deps.ChatController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
