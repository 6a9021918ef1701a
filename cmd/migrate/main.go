package main

import (
	"skillswap/database"
	"skillswap/internal/config"
	"skillswap/internal/logger"
)

func main() {
	cfg := config.MustLoad()
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
}
