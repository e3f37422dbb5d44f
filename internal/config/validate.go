package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Storage.TemplatesDir == "" {
		return fmt.Errorf("storage.templates_dir must not be empty")
	}
	if c.Storage.DocumentsDir == "" {
		return fmt.Errorf("storage.documents_dir must not be empty")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes must be > 0 (got %d)", c.Storage.MaxUploadBytes)
	}

	return nil
}
