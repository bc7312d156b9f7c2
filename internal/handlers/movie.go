package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/draft"
	"github.com/thereayou/movie-catalog/internal/events"
	"github.com/thereayou/movie-catalog/internal/handlers/dto"
	"github.com/thereayou/movie-catalog/internal/middleware"
	"github.com/thereayou/movie-catalog/internal/models"
	"github.com/thereayou/movie-catalog/internal/observability"
)

type MovieHandler struct {
	db     *database.Database
	drafts *draft.Store
	pub    events.Publisher
}

func NewMovieHandler(db *database.Database, drafts *draft.Store, pub events.Publisher) *MovieHandler {
	return &MovieHandler{db: db, drafts: drafts, pub: pub}
}

// ListMovies возвращает все фильмы со связанными актерами
func (h *MovieHandler) ListMovies(c *gin.Context) {
	movies, err := h.db.ListMovies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get movies"})
		return
	}

	result := make([]gin.H, len(movies))
	for i := range movies {
		result[i] = formatMovieResponse(&movies[i])
	}

	c.JSON(http.StatusOK, gin.H{"movies": result})
}

// GetMovie возвращает фильм по ID
func (h *MovieHandler) GetMovie(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	movie, err := h.db.GetMovie(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}

	c.JSON(http.StatusOK, formatMovieResponse(movie))
}

// CreateMovie создает фильм вместе со связями
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorIDs := make([]uint, len(req.Actors))
	for i, a := range req.Actors {
		actorIDs[i] = a.ActorID
	}
	ok, err := h.db.ActorsExist(actorIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check actors"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more actors not found"})
		return
	}

	movie := &models.Movie{
		Title:           req.Title,
		Genre:           req.Genre,
		ReleaseDate:     req.ReleaseDate,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		MovieActors:     movieActorsFromInput(req.Actors),
	}

	if err := h.db.CreateMovie(movie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create movie"})
		return
	}

	fullMovie, _ := h.db.GetMovie(movie.ID)
	c.JSON(http.StatusCreated, formatMovieResponse(fullMovie))
}

// UpdateMovie обновляет поля фильма и целиком заменяет состав актеров
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.db.GetMovie(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}

	actorIDs := make([]uint, len(req.Actors))
	for i, a := range req.Actors {
		actorIDs[i] = a.ActorID
	}
	ok, err := h.db.ActorsExist(actorIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check actors"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more actors not found"})
		return
	}

	movie.Title = req.Title
	movie.Genre = req.Genre
	movie.ReleaseDate = req.ReleaseDate
	movie.DurationMinutes = req.DurationMinutes
	movie.Description = req.Description

	if err := h.db.UpdateMovie(movie, movieActorsFromInput(req.Actors)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update movie"})
		return
	}

	fullMovie, _ := h.db.GetMovie(id)
	c.JSON(http.StatusOK, formatMovieResponse(fullMovie))
}

// DeleteMovie удаляет фильм вместе со связями (только админ, см. роуты)
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	if err := h.db.DeleteMovie(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete movie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movie deleted successfully"})
}

// SaveDraft сохраняет черновик формы, перезаписывая предыдущий
func (h *MovieHandler) SaveDraft(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.MovieDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := draft.MovieDraft{
		ID:               req.ID,
		Title:            req.Title,
		Genre:            req.Genre,
		ReleaseDate:      req.ReleaseDate,
		DurationMinutes:  req.DurationMinutes,
		Description:      req.Description,
		SelectedActorIDs: req.SelectedActorIDs,
	}

	expiresAt, err := h.drafts.Save(c.Request.Context(), userID.String(), snapshot)
	if err != nil {
		observability.IncDraftOp("save", "error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save draft"})
		return
	}

	observability.IncDraftOp("save", "ok")
	c.JSON(http.StatusOK, gin.H{
		"message":    "draft saved",
		"expires_at": expiresAt,
	})
}

// CheckDraft возвращает текущий черновик и остаток окна действия.
// Просроченный черновик считается отсутствующим и удаляется.
func (h *MovieHandler) CheckDraft(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	snapshot, remaining, err := h.drafts.Check(c.Request.Context(), userID.String())
	if err != nil {
		if errors.Is(err, draft.ErrNotFound) || errors.Is(err, draft.ErrExpired) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":              snapshot,
		"expires_in_seconds": int(remaining.Seconds()),
	})
}

// ApplyDraft атомарно забирает черновик и применяет его: ID == 0 —
// создание нового фильма, иначе перезапись полей и полная замена
// состава актеров
func (h *MovieHandler) ApplyDraft(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	snapshot, err := h.drafts.Take(c.Request.Context(), userID.String())
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrNotFound):
			observability.IncDraftOp("apply", "absent")
			c.JSON(http.StatusNotFound, gin.H{"error": "no draft saved"})
		case errors.Is(err, draft.ErrExpired):
			observability.IncDraftOp("apply", "expired")
			c.JSON(http.StatusGone, gin.H{"error": "draft expired"})
		default:
			observability.IncDraftOp("apply", "error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply draft"})
		}
		return
	}

	ok, err := h.db.ActorsExist(snapshot.SelectedActorIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check actors"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more actors not found"})
		return
	}

	movieActors := make([]models.MovieActor, len(snapshot.SelectedActorIDs))
	for i, actorID := range snapshot.SelectedActorIDs {
		movieActors[i] = models.MovieActor{ActorID: actorID}
	}

	var movieID uint
	if snapshot.ID == 0 {
		movie := &models.Movie{
			Title:           snapshot.Title,
			Genre:           snapshot.Genre,
			ReleaseDate:     snapshot.ReleaseDate,
			DurationMinutes: snapshot.DurationMinutes,
			Description:     snapshot.Description,
			MovieActors:     movieActors,
		}
		if err := h.db.CreateMovie(movie); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create movie"})
			return
		}
		movieID = movie.ID
	} else {
		movie, err := h.db.GetMovie(snapshot.ID)
		if err != nil {
			observability.IncDraftOp("apply", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}

		movie.Title = snapshot.Title
		movie.Genre = snapshot.Genre
		movie.ReleaseDate = snapshot.ReleaseDate
		movie.DurationMinutes = snapshot.DurationMinutes
		movie.Description = snapshot.Description

		if err := h.db.UpdateMovie(movie, movieActors); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update movie"})
			return
		}
		movieID = movie.ID
	}

	observability.IncDraftOp("apply", "ok")
	go h.pub.Publish(context.Background(), "catalog.draft.applied", gin.H{
		"user_id":  userID,
		"movie_id": movieID,
	})

	fullMovie, _ := h.db.GetMovie(movieID)
	c.JSON(http.StatusOK, gin.H{
		"message": "draft applied",
		"movie":   formatMovieResponse(fullMovie),
	})
}

// formatMovieResponse форматирует ответ для фильма
func formatMovieResponse(movie *models.Movie) gin.H {
	if movie == nil {
		return gin.H{}
	}

	actors := make([]gin.H, len(movie.MovieActors))
	for i, ma := range movie.MovieActors {
		actor := gin.H{
			"actor_id":      ma.ActorID,
			"role_name":     ma.RoleName,
			"billing_order": ma.BillingOrder,
		}
		if ma.Actor != nil {
			actor["first_name"] = ma.Actor.FirstName
			actor["last_name"] = ma.Actor.LastName
		}
		actors[i] = actor
	}

	return gin.H{
		"id":               movie.ID,
		"title":            movie.Title,
		"genre":            movie.Genre,
		"release_date":     movie.ReleaseDate.Format(time.RFC3339),
		"duration_minutes": movie.DurationMinutes,
		"description":      movie.Description,
		"actors":           actors,
	}
}

func movieActorsFromInput(inputs []dto.MovieActorInput) []models.MovieActor {
	movieActors := make([]models.MovieActor, len(inputs))
	for i, in := range inputs {
		movieActors[i] = models.MovieActor{
			ActorID:      in.ActorID,
			RoleName:     in.RoleName,
			BillingOrder: in.BillingOrder,
		}
	}
	return movieActors
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
