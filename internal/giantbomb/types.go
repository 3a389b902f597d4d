package giantbomb

import (
	"encoding/json"
	"time"
)

// Config holds the configuration for the Giant Bomb API client
type Config struct {
	BaseURL      string        // API base URL
	APIKey       string        // API key for authentication
	Timeout      time.Duration // HTTP request timeout
	RequestDelay time.Duration // minimum delay between successive requests
	MaxRetries   int           // retry attempts per request before giving up
	CacheTTL     time.Duration // detail record cache TTL
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://www.giantbomb.com/api",
		Timeout:      30 * time.Second,
		RequestDelay: 1 * time.Second,
		MaxRetries:   3,
		CacheTTL:     1 * time.Hour,
	}
}

// List resources exposed by the Giant Bomb API.
const (
	ResourceRatingBoards = "rating_boards"
	ResourceGameRatings  = "game_ratings"
	ResourceGenres       = "genres"
	ResourceCompanies    = "companies"
	ResourcePlatforms    = "platforms"
	ResourceGames        = "games"

	// Detail resource for a single game, addressed by guid
	ResourceGame = "game"
)

// Page is one page of a paginated list response. Results is left raw for the
// caller to decode into the resource-specific shape.
type Page struct {
	Error                string          `json:"error"`
	Limit                int             `json:"limit"`
	Offset               int             `json:"offset"`
	NumberOfPageResults  int             `json:"number_of_page_results"`
	NumberOfTotalResults int             `json:"number_of_total_results"`
	StatusCode           int             `json:"status_code"`
	Results              json.RawMessage `json:"results"`
}

// detailEnvelope wraps a single-record detail response.
type detailEnvelope struct {
	Error      string          `json:"error"`
	StatusCode int             `json:"status_code"`
	Results    json.RawMessage `json:"results"`
}

// statusOK is the envelope status code for a successful request. The API
// reports application-level errors inside a 200 response.
const statusOK = 1

// Image is the provider's image object; any of its fields may be empty.
type Image struct {
	IconURL     string `json:"icon_url"`
	MediumURL   string `json:"medium_url"`
	ScreenURL   string `json:"screen_url"`
	SmallURL    string `json:"small_url"`
	ThumbURL    string `json:"thumb_url"`
	OriginalURL string `json:"original_url"`
}

// Ref is a cross-resource reference carried inside another record. The id is
// the provider's external id, not an internal one.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RatingBoardResult is a single rating board list item.
type RatingBoardResult struct {
	ID          int     `json:"id"`
	GUID        string  `json:"guid"`
	Name        string  `json:"name"`
	Deck        *string `json:"deck"`
	Description *string `json:"description"`
	Image       *Image  `json:"image"`
}

// GameRatingResult is a single game rating list item.
type GameRatingResult struct {
	ID          int     `json:"id"`
	GUID        string  `json:"guid"`
	Name        string  `json:"name"`
	Image       *Image  `json:"image"`
	RatingBoard *Ref    `json:"rating_board"`
}

// GenreResult is a single genre list item.
type GenreResult struct {
	ID          int     `json:"id"`
	GUID        string  `json:"guid"`
	Name        string  `json:"name"`
	Deck        *string `json:"deck"`
	Description *string `json:"description"`
	Image       *Image  `json:"image"`
}

// CompanyResult is a single company list item.
type CompanyResult struct {
	ID              int     `json:"id"`
	GUID            string  `json:"guid"`
	Name            string  `json:"name"`
	Deck            *string `json:"deck"`
	Description     *string `json:"description"`
	Abbreviation    *string `json:"abbreviation"`
	Aliases         *string `json:"aliases"` // newline-delimited
	DateFounded     *string `json:"date_founded"`
	Website         *string `json:"website"`
	Image           *Image  `json:"image"`
	LocationAddress *string `json:"location_address"`
	LocationCity    *string `json:"location_city"`
	LocationState   *string `json:"location_state"`
	LocationCountry *string `json:"location_country"`
}

// PlatformResult is a single platform list item.
type PlatformResult struct {
	ID           int     `json:"id"`
	GUID         string  `json:"guid"`
	Name         string  `json:"name"`
	Deck         *string `json:"deck"`
	Description  *string `json:"description"`
	Abbreviation *string `json:"abbreviation"`
	Aliases      *string `json:"aliases"` // newline-delimited
	ReleaseDate  *string `json:"release_date"`
	Image        *Image  `json:"image"`
	Company      *Ref    `json:"company"`
}

// GameResult is a single game list item. The listing omits cross-resource
// references; those come from the per-game detail record.
type GameResult struct {
	ID                     int     `json:"id"`
	GUID                   string  `json:"guid"`
	Name                   string  `json:"name"`
	Deck                   *string `json:"deck"`
	Description            *string `json:"description"`
	Aliases                *string `json:"aliases"` // newline-delimited
	OriginalReleaseDate    *string `json:"original_release_date"`
	ExpectedReleaseYear    *int    `json:"expected_release_year"`
	ExpectedReleaseQuarter *int    `json:"expected_release_quarter"`
	ExpectedReleaseMonth   *int    `json:"expected_release_month"`
	ExpectedReleaseDay     *int    `json:"expected_release_day"`
	Image                  *Image  `json:"image"`
}

// GameDetailResult is the full game record from the detail endpoint.
type GameDetailResult struct {
	GameResult

	Images             []Image `json:"images"`
	Genres             []Ref   `json:"genres"`
	Platforms          []Ref   `json:"platforms"`
	Developers         []Ref   `json:"developers"`
	Publishers         []Ref   `json:"publishers"`
	OriginalGameRating []Ref   `json:"original_game_rating"`
}
