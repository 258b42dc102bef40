package entity

import "github.com/google/uuid"

// UserClaims is the verified identity of a caller for one request.
// It is reconstructed per request from a token or a freshly saved user
// and never persisted.
type UserClaims struct {
	ID       uuid.UUID
	Email    string
	LastName string
	Role     Role
}
