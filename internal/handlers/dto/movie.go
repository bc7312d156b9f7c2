package dto

import "time"

// MovieActorInput — связь фильма с актером в запросе
type MovieActorInput struct {
	ActorID      uint   `json:"actor_id" binding:"required"`
	RoleName     string `json:"role_name" binding:"omitempty,max=100"`
	BillingOrder int    `json:"billing_order" binding:"omitempty,min=1,max=100"`
}

type MovieRequest struct {
	Title           string            `json:"title" binding:"required,max=100"`
	Genre           string            `json:"genre" binding:"required,max=50"`
	ReleaseDate     time.Time         `json:"release_date" binding:"required"`
	DurationMinutes int               `json:"duration_minutes" binding:"required,min=1,max=600"`
	Description     string            `json:"description" binding:"omitempty,max=500"`
	Actors          []MovieActorInput `json:"actors" binding:"omitempty,dive"`
}

// MovieDraftRequest — снимок формы для черновика. ID == 0 — новый фильм.
type MovieDraftRequest struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title" binding:"required,max=100"`
	Genre            string    `json:"genre" binding:"required,max=50"`
	ReleaseDate      time.Time `json:"release_date" binding:"required"`
	DurationMinutes  int       `json:"duration_minutes" binding:"required,min=1,max=600"`
	Description      string    `json:"description" binding:"omitempty,max=500"`
	SelectedActorIDs []uint    `json:"selected_actor_ids"`
}

type ActorRequest struct {
	FirstName string    `json:"first_name" binding:"required,max=50"`
	LastName  string    `json:"last_name" binding:"required,max=50"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Country   string    `json:"country" binding:"omitempty,max=50"`
	Biography string    `json:"biography" binding:"omitempty,max=1000"`
}
