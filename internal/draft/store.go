package draft

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	// ErrNotFound — черновик не сохранялся или уже забран
	ErrNotFound = errors.New("draft not found")
	// ErrExpired — срок действия черновика истек
	ErrExpired = errors.New("draft expired")
)

// DefaultTTL — окно действия черновика
const DefaultTTL = 30 * time.Second

// MovieDraft — снимок формы редактирования фильма.
// ID == 0 означает создание нового фильма.
type MovieDraft struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Genre            string    `json:"genre"`
	ReleaseDate      time.Time `json:"release_date"`
	DurationMinutes  int       `json:"duration_minutes"`
	Description      string    `json:"description"`
	SelectedActorIDs []uint    `json:"selected_actor_ids"`
}

// envelope несет собственный срок действия: ключ живет в redis дольше
// окна, чтобы отличать "истек" от "не сохранялся"
type envelope struct {
	Snapshot  MovieDraft `json:"snapshot"`
	SavedAt   time.Time  `json:"saved_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Store хранит черновики в redis, по одному на пользователя
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) key(userID string) string {
	return "draft:movie:" + userID
}

// Save сохраняет черновик, перезаписывая предыдущий
func (s *Store) Save(ctx context.Context, userID string, snapshot MovieDraft) (time.Time, error) {
	now := time.Now().UTC()
	env := envelope{
		Snapshot:  snapshot,
		SavedAt:   now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(env)
	if err != nil {
		return time.Time{}, err
	}

	if err := s.rdb.Set(ctx, s.key(userID), data, 2*s.ttl).Err(); err != nil {
		return time.Time{}, err
	}

	return env.ExpiresAt, nil
}

// Check возвращает черновик и остаток окна действия.
// Просроченный черновик удаляется сразу.
func (s *Store) Check(ctx context.Context, userID string) (*MovieDraft, time.Duration, error) {
	data, err := s.rdb.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, 0, err
	}

	remaining := time.Until(env.ExpiresAt)
	if remaining <= 0 {
		s.rdb.Del(ctx, s.key(userID))
		return nil, 0, ErrExpired
	}

	return &env.Snapshot, remaining, nil
}

// Take атомарно забирает черновик (GETDEL): из двух конкурентных
// применений второе увидит ErrNotFound
func (s *Store) Take(ctx context.Context, userID string) (*MovieDraft, error) {
	data, err := s.rdb.GetDel(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	if time.Now().UTC().After(env.ExpiresAt) {
		return nil, ErrExpired
	}

	return &env.Snapshot, nil
}

// Clear удаляет черновик без применения
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, s.key(userID)).Err()
}
