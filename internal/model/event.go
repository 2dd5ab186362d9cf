package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          int        `json:"id" db:"id"`
	EventID     uuid.UUID  `json:"event_id" db:"event_id"`
	OrganizerID *int       `json:"organizer_id,omitempty" db:"organizer_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	StartsAt    *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type UpdateEventParams struct {
	Name        *string
	Description *string
	StartsAt    *time.Time
}

type Organizer struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
