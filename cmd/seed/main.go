package main

import (
	"flag"
	"log"

	"steamfinder/internal/config"
	"steamfinder/internal/database"
	"steamfinder/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 40, "Number of users to create")
	clean := flag.Bool("clean", false, "Clear existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
