package entity

import "time"

// Company represents a game developer or publisher.
type Company struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"uniqueIndex;not null"`
	Description  *string `gorm:"type:text"`
	Summary      *string
	Abbreviation *string // common abbreviation for the company
	DateFounded  *time.Time
	Website      *string
	Aliases      []string `gorm:"serializer:json"` // alternate names, nil when the provider reports none
	MainImage    *string

	StreetAddress *string
	City          *string
	State         *string
	Country       *string

	ExternalID     *int           `gorm:"uniqueIndex:idx_companies_external"`
	GUID           *string        // ID used for single item calls to the provider API
	ExternalSource ExternalSource `gorm:"uniqueIndex:idx_companies_external"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
