package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Shadowrun-FPS/tournament-service/internal/config"
	"github.com/Shadowrun-FPS/tournament-service/internal/db"
	"github.com/Shadowrun-FPS/tournament-service/internal/service"
)

func main() {
	cfg := config.Load()

	database := db.InitDB(cfg.DatabasePath)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	pool := cfg.MapPool
	if len(pool) == 0 {
		pool = service.DefaultMapPool
	}
	picker := service.NewRandomMapPicker(pool, time.Now().UnixNano())

	router := newRouter(database, picker)

	log.Println("Server starting on http://localhost:" + cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
