// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Customers and back-office operators share the
// same table and are told apart by Role.
type User struct {
	ID           uuid.UUID
	Email        string // Unique, immutable after registration.
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Roles returns the user's role as a Roles slice for token issuance.
func (u *User) Roles() Roles {
	if !u.Role.IsValid() {
		return Roles{}
	}

	return Roles{u.Role}
}
