package entity

import "time"

// RatingBoard represents a game rating organization, e.g. ESRB or PEGI.
type RatingBoard struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
	Summary     *string
	MainImage   *string

	// Provenance of imported records
	ExternalID     *int           `gorm:"uniqueIndex:idx_rating_boards_external"`
	GUID           *string        // ID used for single item calls to the provider API
	ExternalSource ExternalSource `gorm:"uniqueIndex:idx_rating_boards_external"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
