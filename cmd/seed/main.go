package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/property-marketplace/config"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
)

type cityRow struct {
	id       string
	name     string
	minPrice *float64
}

func f(v float64) *float64 { return &v }

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Bogota is the one city with a listing price floor.
	cities := []cityRow{
		{"a4b2c9d7-258e-4f2f-a1ad-1c7f5f2a9d75", "Bogota", f(2000000)},
		{"e9c1a570-dbe4-4a2e-a71e-2fd5a7b7f123", "Medellin", nil},
		{"b7f3e8a1-4c2d-4e9f-8a6b-9d1c3e5f7a2b", "Cali", nil},
		{"c8a4f9b2-5d3e-4f1a-9b7c-1e2d4f6a8b3c", "Cartagena", nil},
	}
	for _, c := range cities {
		if _, err := db.Exec(`
			INSERT INTO cities (id, name, min_price)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, min_price = EXCLUDED.min_price
		`, c.id, c.name, c.minPrice); err != nil {
			log.Fatalf("failed to seed city %s: %v", c.name, err)
		}
	}
	fmt.Printf("seeded %d cities\n", len(cities))

	email := "admin@marketplace.local"
	password := "changeme123"
	hash, err := helpers.BcryptComparer{}.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, first_name, last_name, age, password, role)
		VALUES ($1, $2, $3, $4, $5, 'ADMIN')
		ON CONFLICT (email) DO UPDATE SET role = 'ADMIN'
		RETURNING id
	`, email, "Admin", "Marketplace", 30, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
}
