package domain

import (
	"time"

	"github.com/google/uuid"
)

// Executor is a company that performs work and issues documents.
type Executor struct {
	ID        uuid.UUID
	Name      string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contractor is a client company registered under an executor.
// ContractNumber/ContractDate identify the frame contract the generated
// documents refer to; City is where documents are signed.
type Contractor struct {
	ID             uuid.UUID
	ExecutorID     uuid.UUID
	Name           string
	FullName       string
	City           string
	ContractNumber int
	ContractDate   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Person is a legal signatory, not a system user. Documents are signed on
// behalf of persons; the embedding types bind one to a company side.
type Person struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Surname   string
	Post      string
}

// Initials returns the "Last F.S." signature form.
// A person without a patronymic renders as "Last F.".
func (p *Person) Initials() string {
	if p.LastName == "" || p.FirstName == "" {
		return p.LastName
	}
	s := p.LastName + " " + string([]rune(p.FirstName)[:1]) + "."
	if p.Surname != "" {
		s += string([]rune(p.Surname)[:1]) + "."
	}
	return s
}

// ExecutorPerson is a signatory on the executor side.
type ExecutorPerson struct {
	Person
	ExecutorID uuid.UUID
}

// ContractorPerson is a signatory on the contractor side.
type ContractorPerson struct {
	Person
	ContractorID uuid.UUID
}

// User is a system account scoped to an executor company.
type User struct {
	ID           uuid.UUID
	ExecutorID   uuid.UUID
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Surname      string
	IsSuperuser  bool
	CreatedAt    time.Time
}
