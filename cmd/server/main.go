package main

import (
	"github.com/thereayou/movie-catalog/internal/logger"
	"github.com/thereayou/movie-catalog/internal/server"
)

func main() {
	logger.Init()
	srv := server.NewServer()
	srv.Run()
}
