package server

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/draft"
	"github.com/thereayou/movie-catalog/internal/events"
	"github.com/thereayou/movie-catalog/internal/handlers"
	"github.com/thereayou/movie-catalog/internal/logger"
	ws "github.com/thereayou/movie-catalog/internal/websocket"
	"github.com/thereayou/movie-catalog/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Publisher  events.Publisher
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logger.Get().Info(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		logger.Get().Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logger.Get().Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Get().Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	go hub.Run()

	drafts := draft.NewStore(rdb, draftTTL())
	pub := events.NewPublisher(os.Getenv("AMQP_URL"), "catalog.events")

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	movieH := handlers.NewMovieHandler(dbConn, drafts, pub)
	actorH := handlers.NewActorHandler(dbConn)
	historyH := handlers.NewHistoryHandler(dbConn)
	adminH := handlers.NewAdminHandler(dbConn)
	uploadH := handlers.NewUploadHandler(uploadDir)
	chatH := handlers.NewChatHandler(dbConn, hub, pub)
	wsH := handlers.NewWebSocketHandler(hub, chatH, dbConn)

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:      authH,
		Movie:     movieH,
		Actor:     actorH,
		History:   historyH,
		Admin:     adminH,
		Upload:    uploadH,
		WebSocket: wsH,
	}, jwtMgr, rdb, uploadDir)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Publisher:  pub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Get().Infof("server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		logger.Get().Fatalf("server run error: %v", err)
	}
}

// draftTTL читает окно действия черновика из DRAFT_TTL (секунды)
func draftTTL() time.Duration {
	raw := os.Getenv("DRAFT_TTL")
	if raw == "" {
		return draft.DefaultTTL
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		logger.Get().Warnf("invalid DRAFT_TTL %q, using default", raw)
		return draft.DefaultTTL
	}
	return time.Duration(seconds) * time.Second
}
