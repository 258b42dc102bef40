package entity

import "github.com/google/uuid"

// City is a lookup entity referenced by properties.
// MinPrice, when set, is an exclusive lower bound for listing prices in
// that city (Bogota carries 2,000,000).
type City struct {
	ID       uuid.UUID
	Name     string
	MinPrice *float64
}
