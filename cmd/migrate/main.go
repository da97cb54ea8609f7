// Command migrate applies the database schema without starting the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"fittrack/internal/config"
	"fittrack/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <schema|auto>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "schema":
		// Connect already applied the versioned schema file.
		log.Printf("schema applied from %s", cfg.SchemaPath)
	case "auto":
		if err := database.MigrateAll(db); err != nil {
			return fmt.Errorf("automigrations failed: %w", err)
		}
		log.Println("automigrations applied")
	default:
		return usage()
	}
	return nil
}
