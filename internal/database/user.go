package database

import (
	"github.com/thereayou/movie-catalog/internal/models"
	"time"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := d.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (d *Database) UpdateLastSeen(id string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now().UTC()).Error
}

// SetOnline синхронизирует флаг онлайн при подключении/отключении
func (d *Database) SetOnline(id string, online bool) error {
	updates := map[string]interface{}{
		"is_online":    online,
		"last_seen_at": time.Now().UTC(),
	}
	return d.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

func (d *Database) UpdateUserRole(id string, role string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("role", role).Error
}

func (d *Database) DeleteUser(id string) error {
	return d.db.Delete(&models.User{}, "id = ?", id).Error
}
