package websocket

import "errors"

var (
	ErrClientQueueFull   = errors.New("client message queue is full")
	ErrInvalidMessage    = errors.New("invalid message format")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotInMovieChannel = errors.New("user not in movie channel")
	ErrMessageNotSaved   = errors.New("message not saved")
)
