package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/movie-catalog/internal/models"
)

func (d *Database) SaveChatMessage(message *models.ChatMessage) error {
	return d.db.Create(message).Error
}

// GetMovieMessages получает сообщения канала фильма с пагинацией
func (d *Database) GetMovieMessages(movieID uint, limit int, beforeID *uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	query := d.db.Where("movie_id = ? AND is_private = false", movieID)

	// Если указан beforeID, получаем сообщения до него
	if beforeID != nil {
		var beforeMsg models.ChatMessage
		if err := d.db.First(&beforeMsg, "id = ?", *beforeID).Error; err == nil {
			query = query.Where("created_at < ?", beforeMsg.CreatedAt)
		}
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// GetPrivateMessages получает переписку двух пользователей в обоих направлениях
func (d *Database) GetPrivateMessages(userID, otherID uuid.UUID, limit int, beforeID *uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	query := d.db.Where(
		"is_private = true AND ((sender_user_id = ? AND receiver_user_id = ?) OR (sender_user_id = ? AND receiver_user_id = ?))",
		userID, otherID, otherID, userID,
	)

	if beforeID != nil {
		var beforeMsg models.ChatMessage
		if err := d.db.First(&beforeMsg, "id = ?", *beforeID).Error; err == nil {
			query = query.Where("created_at < ?", beforeMsg.CreatedAt)
		}
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
