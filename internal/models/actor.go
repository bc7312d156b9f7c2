package models

import "time"

type Actor struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:50;not null"`
	LastName  string `gorm:"size:50;not null"`
	BirthDate time.Time
	Country   string `gorm:"size:50"`
	Biography string `gorm:"size:1000"`

	// Связи
	MovieActors []MovieActor `gorm:"foreignKey:ActorID"`
}

// FullName возвращает полное имя актера
func (a *Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}
