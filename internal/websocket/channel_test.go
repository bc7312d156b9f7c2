package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChannelKeys(t *testing.T) {
	userID := uuid.New()

	assert.Equal(t, MovieChannel(1), MovieChannel(1))
	assert.NotEqual(t, MovieChannel(1), MovieChannel(2))
	assert.Equal(t, PrivateChannel(userID), PrivateChannel(userID))
	assert.NotEqual(t, PrivateChannel(userID), PrivateChannel(uuid.New()))

	// Канал фильма и личный канал не пересекаются даже при совпадении нулей
	assert.NotEqual(t, MovieChannel(0), PrivateChannel(uuid.Nil))
}
