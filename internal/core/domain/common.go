package domain

import "time"

// Timestamps holds the creation and last update time of a persisted record.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
