package database

import (
	"github.com/thereayou/movie-catalog/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateActor(actor *models.Actor) error {
	return d.db.Create(actor).Error
}

func (d *Database) GetActor(id uint) (*models.Actor, error) {
	var actor models.Actor
	if err := d.db.Preload("MovieActors.Movie").First(&actor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &actor, nil
}

func (d *Database) ListActors() ([]models.Actor, error) {
	var actors []models.Actor
	err := d.db.
		Order("last_name ASC, first_name ASC").
		Find(&actors).Error
	if err != nil {
		return nil, err
	}
	return actors, nil
}

func (d *Database) UpdateActor(actor *models.Actor) error {
	updates := map[string]interface{}{
		"first_name": actor.FirstName,
		"last_name":  actor.LastName,
		"birth_date": actor.BirthDate,
		"country":    actor.Country,
		"biography":  actor.Biography,
	}
	return d.db.Model(&models.Actor{}).Where("id = ?", actor.ID).Updates(updates).Error
}

func (d *Database) DeleteActor(id uint) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var actor models.Actor
		if err := tx.First(&actor, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.MovieActor{}, "actor_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&actor).Error
	})
}

// ActorsExist проверяет, что все переданные актеры существуют
func (d *Database) ActorsExist(ids []uint) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	if err := d.db.Model(&models.Actor{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}
