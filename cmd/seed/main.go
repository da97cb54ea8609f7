// Command seed populates the database with demo data for development.
package main

import (
	"log"

	"fittrack/internal/bootstrap"
	"fittrack/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed demo data in production")
	}

	if _, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedDemo: true}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Demo data seeded")
}
