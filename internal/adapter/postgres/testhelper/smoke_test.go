package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	executor := SeedExecutor(t, pool)

	// Verify the executor exists in DB via SELECT.
	var name string
	err := pool.QueryRow(
		context.Background(),
		`SELECT name FROM executors WHERE id = $1`,
		executor.ID,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected executor in DB, got error: %v", err)
	}

	if name != executor.Name {
		t.Fatalf("expected name %q, got %q", executor.Name, name)
	}
}
