package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thereayou/movie-catalog/internal/handlers"
	"github.com/thereayou/movie-catalog/internal/middleware"
	"github.com/thereayou/movie-catalog/internal/models"
	"github.com/thereayou/movie-catalog/pkg/auth"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Movie     *handlers.MovieHandler
	Actor     *handlers.ActorHandler
	History   *handlers.HistoryHandler
	Admin     *handlers.AdminHandler
	Upload    *handlers.UploadHandler
	WebSocket *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, h *Handlers, jwtMgr *auth.JWTManager, rdb *redis.Client, uploadDir string) {
	r.Static("/uploads", uploadDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), h.Auth.Logout)
	}

	// вебсокет авторизуется через query-параметр, браузер не умеет
	// выставлять заголовки при апгрейде
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), h.WebSocket.HandleWebSocket)

	api := r.Group("/api/v1")

	// Каталог открыт на чтение без токена
	api.GET("/movies", h.Movie.ListMovies)
	api.GET("/movies/:id", h.Movie.GetMovie)
	api.GET("/actors", h.Actor.ListActors)
	api.GET("/actors/:id", h.Actor.GetActor)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		movies := authed.Group("/movies")
		{
			movies.POST("", h.Movie.CreateMovie)
			movies.PUT("/:id", h.Movie.UpdateMovie)
			movies.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), h.Movie.DeleteMovie)

			movies.POST("/draft", h.Movie.SaveDraft)
			movies.GET("/draft", h.Movie.CheckDraft)
			movies.POST("/draft/apply", h.Movie.ApplyDraft)

			movies.GET("/:id/messages", h.History.GetMovieMessages)
		}

		actors := authed.Group("/actors")
		{
			actors.POST("", h.Actor.CreateActor)
			actors.PUT("/:id", h.Actor.UpdateActor)
			actors.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), h.Actor.DeleteActor)
		}

		authed.GET("/chat/private/:user_id", h.History.GetPrivateMessages)
		authed.POST("/files", h.Upload.Upload)

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", h.Admin.ListUsers)
			admin.PUT("/users/:id/role", h.Admin.UpdateUserRole)
			admin.DELETE("/users/:id", h.Admin.DeleteUser)
		}
	}
}
