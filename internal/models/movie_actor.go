package models

// MovieActor связывает фильм и актера (many-to-many с ролью и порядком в титрах).
// Пара (movie_id, actor_id) уникальна.
type MovieActor struct {
	ID           uint   `gorm:"primaryKey"`
	MovieID      uint   `gorm:"not null;uniqueIndex:idx_movie_actor"`
	ActorID      uint   `gorm:"not null;uniqueIndex:idx_movie_actor"`
	RoleName     string `gorm:"size:100"`
	BillingOrder int    `gorm:"check:billing_order BETWEEN 1 AND 100"`

	// Связи
	Movie *Movie `gorm:"foreignKey:MovieID"`
	Actor *Actor `gorm:"foreignKey:ActorID"`
}
