// Command main runs the database seeder for Pitchside.
package main

import (
	"flag"
	"log"

	"pitchside/internal/config"
	"pitchside/internal/database"
	"pitchside/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	perUser := flag.Int("predictions", 5, "Predictions per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	f := seed.NewFactory(db)

	if *shouldClean {
		if err := f.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := f.Run(*numUsers, *perUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All test users have the password: %s", seed.SeedPassword)
}
