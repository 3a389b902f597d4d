package entity

import "time"

// Rating represents a single rating issued by a rating board, e.g. "ESRB: M".
type Rating struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	MainImage *string

	ExternalID     *int           `gorm:"uniqueIndex:idx_ratings_external"`
	GUID           *string        // ID used for single item calls to the provider API
	ExternalSource ExternalSource `gorm:"uniqueIndex:idx_ratings_external"`

	// Issuing board, required
	RatingBoardID uint         `gorm:"not null;index"`
	RatingBoard   *RatingBoard `gorm:"foreignKey:RatingBoardID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
