package entity

import "time"

// Platform represents a gaming platform, e.g. "PlayStation 5".
type Platform struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"uniqueIndex;not null"`
	Description  *string `gorm:"type:text"`
	Summary      *string
	Abbreviation *string // common abbreviation for the platform
	ReleaseDate  *time.Time
	Aliases      []string `gorm:"serializer:json"` // alternate names, nil when the provider reports none
	MainImage    *string

	ExternalID     *int           `gorm:"uniqueIndex:idx_platforms_external"`
	GUID           *string        // ID used for single item calls to the provider API
	ExternalSource ExternalSource `gorm:"uniqueIndex:idx_platforms_external"`

	// Manufacturing company, required
	CompanyID uint     `gorm:"not null;index"`
	Company   *Company `gorm:"foreignKey:CompanyID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
