// Command server runs the document-generation HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML) and environment variables;
// DATABASE_DSN and AUTH_JWT_SECRET are required.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/asmelnikov/docgen-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
