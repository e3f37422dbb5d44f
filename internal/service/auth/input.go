package auth

import (
	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Username string
	Password string
}

// Validate checks the login input.
func (in LoginInput) Validate() error {
	var fields []domain.FieldError
	if in.Username == "" {
		fields = append(fields, domain.FieldError{Field: "username", Message: "must not be empty"})
	}
	if in.Password == "" {
		fields = append(fields, domain.FieldError{Field: "password", Message: "must not be empty"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// RegisterInput carries the data of a new account.
type RegisterInput struct {
	ExecutorID uuid.UUID
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Surname    string
}

// Validate checks the registration input.
func (in RegisterInput) Validate() error {
	var fields []domain.FieldError
	if in.ExecutorID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "executor_id", Message: "must not be empty"})
	}
	if in.Username == "" {
		fields = append(fields, domain.FieldError{Field: "username", Message: "must not be empty"})
	}
	if len(in.Password) < 8 {
		fields = append(fields, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
