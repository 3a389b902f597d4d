package entity

import "time"

// VideoGame represents a catalogued video game with its cross-entity references.
type VideoGame struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
	Summary     *string
	Aliases     []string `gorm:"serializer:json"` // alternate names, nil when the provider reports none

	ReleaseDate *time.Time
	// Expected release date parts for unreleased games, e.g. quarter 1 = Q1
	ExpectedReleaseYear    *int
	ExpectedReleaseQuarter *int
	ExpectedReleaseMonth   *int
	ExpectedReleaseDay     *int

	MainImage *string
	Images    []string `gorm:"serializer:json"` // all images associated with the game

	ExternalID     *int           `gorm:"uniqueIndex:idx_video_games_external"`
	GUID           *string        // ID used for single item calls to the provider API
	ExternalSource ExternalSource `gorm:"uniqueIndex:idx_video_games_external"`

	Genres     []Genre    `gorm:"many2many:video_game_genres"`
	Platforms  []Platform `gorm:"many2many:video_game_platforms"`
	Developers []Company  `gorm:"many2many:video_game_developers"`
	Publishers []Company  `gorm:"many2many:video_game_publishers"`
	Ratings    []Rating   `gorm:"many2many:video_game_ratings"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
