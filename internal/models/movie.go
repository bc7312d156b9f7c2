package models

import "time"

type Movie struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"size:100;not null"`
	Genre           string `gorm:"size:50;not null"`
	ReleaseDate     time.Time
	DurationMinutes int    `gorm:"not null;check:duration_minutes BETWEEN 1 AND 600"`
	Description     string `gorm:"size:500"`

	// Связи
	MovieActors []MovieActor `gorm:"foreignKey:MovieID"`
}
