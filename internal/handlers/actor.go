package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/handlers/dto"
	"github.com/thereayou/movie-catalog/internal/models"
)

type ActorHandler struct {
	db *database.Database
}

func NewActorHandler(db *database.Database) *ActorHandler {
	return &ActorHandler{db: db}
}

// ListActors возвращает всех актеров
func (h *ActorHandler) ListActors(c *gin.Context) {
	actors, err := h.db.ListActors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get actors"})
		return
	}

	result := make([]gin.H, len(actors))
	for i := range actors {
		result[i] = formatActorResponse(&actors[i], false)
	}

	c.JSON(http.StatusOK, gin.H{"actors": result})
}

// GetActor возвращает актера с его фильмографией
func (h *ActorHandler) GetActor(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor id"})
		return
	}

	actor, err := h.db.GetActor(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "actor not found"})
		return
	}

	c.JSON(http.StatusOK, formatActorResponse(actor, true))
}

func (h *ActorHandler) CreateActor(c *gin.Context) {
	var req dto.ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := &models.Actor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Country:   req.Country,
		Biography: req.Biography,
	}

	if err := h.db.CreateActor(actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create actor"})
		return
	}

	c.JSON(http.StatusCreated, formatActorResponse(actor, false))
}

func (h *ActorHandler) UpdateActor(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor id"})
		return
	}

	var req dto.ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := h.db.GetActor(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "actor not found"})
		return
	}

	actor.FirstName = req.FirstName
	actor.LastName = req.LastName
	actor.BirthDate = req.BirthDate
	actor.Country = req.Country
	actor.Biography = req.Biography

	if err := h.db.UpdateActor(actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update actor"})
		return
	}

	c.JSON(http.StatusOK, formatActorResponse(actor, false))
}

// DeleteActor удаляет актера вместе со связями (только админ, см. роуты)
func (h *ActorHandler) DeleteActor(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor id"})
		return
	}

	if err := h.db.DeleteActor(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "actor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete actor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "actor deleted successfully"})
}

// formatActorResponse форматирует ответ для актера
func formatActorResponse(actor *models.Actor, withMovies bool) gin.H {
	response := gin.H{
		"id":         actor.ID,
		"first_name": actor.FirstName,
		"last_name":  actor.LastName,
		"birth_date": actor.BirthDate.Format(time.RFC3339),
		"country":    actor.Country,
		"biography":  actor.Biography,
	}

	if withMovies {
		movies := make([]gin.H, 0, len(actor.MovieActors))
		for _, ma := range actor.MovieActors {
			if ma.Movie == nil {
				continue
			}
			movies = append(movies, gin.H{
				"movie_id":      ma.MovieID,
				"title":         ma.Movie.Title,
				"role_name":     ma.RoleName,
				"billing_order": ma.BillingOrder,
			})
		}
		response["movies"] = movies
	}

	return response
}
