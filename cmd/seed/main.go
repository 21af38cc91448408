// Command main runs the database seeder for Qubeia.
package main

import (
	"flag"
	"log"

	"qubeia/internal/config"
	"qubeia/internal/database"
	"qubeia/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numItems := flag.Int("items", 100, "Number of content items to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	maxDays := flag.Int("max-days", 90, "Spread created_at timestamps over this many days")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d items, clean=%v\n", *numUsers, *numItems, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(database.DB, seed.Options{
		NumUsers:    *numUsers,
		NumItems:    *numItems,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
