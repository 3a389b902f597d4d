package entity

import "time"

// Genre represents a video game genre, e.g. "Platformer".
type Genre struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
	Summary     *string
	MainImage   *string

	ExternalID     *int           `gorm:"uniqueIndex:idx_genres_external"`
	GUID           *string        // ID used for single item calls to the provider API
	ExternalSource ExternalSource `gorm:"uniqueIndex:idx_genres_external"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
