package main

import (
	"log"
	"net/http"

	"bloglist/internal/config"
	"bloglist/internal/database"
	"bloglist/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Starting with %s", cfg)

	log.Printf("Connecting to %s", cfg.Database.Path)
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		if db == nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		// Keep serving; data operations will fail per request until the
		// database becomes reachable.
		log.Printf("Error connecting to database: %v", err)
	} else {
		log.Println("Connected to database")
	}
	defer db.Close()

	h := handlers.New(
		database.NewUserRepository(db),
		database.NewBlogRepository(db),
		cfg,
	)

	log.Printf("Server starting on %s", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, h.Router()); err != nil {
		log.Fatal(err)
	}
}
