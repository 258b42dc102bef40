package entity

import (
	"time"

	"github.com/google/uuid"
)

// Property is a real-estate listing. Name is unique among rows that are
// both active and available. DateCreated is day-granular: always the
// start of the creation day.
type Property struct {
	ID          uuid.UUID // uuid.Nil until the repository assigns one
	Name        string
	Image       string
	Location    City
	Price       float64
	DateCreated time.Time
	Active      bool
	Available   bool
}
