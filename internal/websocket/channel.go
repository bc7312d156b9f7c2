package websocket

import "github.com/google/uuid"

type ChannelKind int

const (
	// ChannelMovie — групповой канал чата фильма
	ChannelMovie ChannelKind = iota + 1
	// ChannelPrivate — личный канал пользователя (все его соединения)
	ChannelPrivate
)

// ChannelKey адресует канал рассылки. Типизированный ключ вместо
// склейки строк вида "movie-<id>", чтобы каналы фильмов и личные
// каналы не могли пересечься.
type ChannelKey struct {
	Kind    ChannelKind
	MovieID uint
	UserID  uuid.UUID
}

func MovieChannel(movieID uint) ChannelKey {
	return ChannelKey{Kind: ChannelMovie, MovieID: movieID}
}

func PrivateChannel(userID uuid.UUID) ChannelKey {
	return ChannelKey{Kind: ChannelPrivate, UserID: userID}
}
