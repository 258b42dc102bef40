package entity

import "github.com/google/uuid"

// Role is the flat authorization tag carried by users and principals.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the aggregate root for the user domain.
// Password holds the stored credential representation; the comparison
// scheme is a collaborator concern and the core never inspects it.
type User struct {
	ID        uuid.UUID // uuid.Nil until the repository assigns one
	Email     string
	FirstName string
	LastName  string
	Age       int
	Password  string
	Role      Role
}

// Claims returns the principal view of the user: the only identity data
// that travels inside a bearer token or back to callers.
func (u *User) Claims() UserClaims {
	return UserClaims{ID: u.ID, Email: u.Email, LastName: u.LastName, Role: u.Role}
}
