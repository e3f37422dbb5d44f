// Command seed-fields upserts the built-in field catalog into the fields
// table. Safe to re-run: existing definitions are refreshed in place and
// custom fields are left alone.
//
// Usage:
//
//	seed-fields
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	fieldrepo "github.com/asmelnikov/docgen-backend/internal/adapter/postgres/field"
	"github.com/asmelnikov/docgen-backend/internal/service/schema"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := fieldrepo.New(pool)

	count := 0
	for _, def := range schema.Builtins() {
		if err := repo.Upsert(ctx, &def); err != nil {
			log.Fatalf("upsert field %s: %v", def.ID, err)
		}
		count++
	}

	fmt.Printf("Seeded %d built-in field definitions.\n", count)
}
