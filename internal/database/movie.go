package database

import (
	"github.com/thereayou/movie-catalog/internal/models"
	"gorm.io/gorm"
)

// CreateMovie создает фильм вместе со связями с актерами
func (d *Database) CreateMovie(movie *models.Movie) error {
	return d.db.Create(movie).Error
}

func (d *Database) GetMovie(id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := d.db.Preload("MovieActors.Actor").First(&movie, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

func (d *Database) ListMovies() ([]models.Movie, error) {
	var movies []models.Movie
	err := d.db.
		Preload("MovieActors.Actor").
		Order("title ASC").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// UpdateMovie обновляет поля фильма и целиком заменяет список связей с актерами
func (d *Database) UpdateMovie(movie *models.Movie, movieActors []models.MovieActor) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":            movie.Title,
			"genre":            movie.Genre,
			"release_date":     movie.ReleaseDate,
			"duration_minutes": movie.DurationMinutes,
			"description":      movie.Description,
		}
		if err := tx.Model(&models.Movie{}).Where("id = ?", movie.ID).Updates(updates).Error; err != nil {
			return err
		}

		// Старые связи удаляем, новые вставляем
		if err := tx.Delete(&models.MovieActor{}, "movie_id = ?", movie.ID).Error; err != nil {
			return err
		}

		if len(movieActors) == 0 {
			return nil
		}

		for i := range movieActors {
			movieActors[i].ID = 0
			movieActors[i].MovieID = movie.ID
		}
		return tx.Create(&movieActors).Error
	})
}

func (d *Database) DeleteMovie(id uint) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var movie models.Movie
		if err := tx.First(&movie, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.MovieActor{}, "movie_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&movie).Error
	})
}

func (d *Database) MovieExists(id uint) (bool, error) {
	var count int64
	if err := d.db.Model(&models.Movie{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
