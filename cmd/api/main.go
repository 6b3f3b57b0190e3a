package main

import (
	"log"

	"go.uber.org/automaxprocs/maxprocs"

	"cover-merge/internal/bootstrap"
	"cover-merge/internal/shared/config"
	"cover-merge/internal/shared/server"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))

	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
