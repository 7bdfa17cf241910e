// Command seed runs the database seeder for Journal.
package main

import (
	"flag"
	"log"

	"journal/internal/config"
	"journal/internal/database"
	"journal/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 20, "Number of posts to create")
	adminUser := flag.String("admin-user", "admin", "Admin username to ensure exists")
	adminPass := flag.String("admin-pass", "changeme-dev-only", "Admin password for a newly created admin")
	shouldClean := flag.Bool("clean", false, "Clean posts before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumPosts:      *numPosts,
		AdminUsername: *adminUser,
		AdminPassword: *adminPass,
		ShouldClean:   *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
