package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"shopd/internal/config"
	"shopd/internal/database"
)

func main() {
	file := "migrations/schema.sql"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	sqlContent, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Connected to database: %s\n", cfg.Database.Database)

	statements := strings.Split(string(sqlContent), ";")
	applied := 0
	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to execute statement %d: %v\nStatement: %s", i+1, err, stmt)
		}
		applied++
	}

	fmt.Printf("Migration completed: %d statements applied\n", applied)
}
