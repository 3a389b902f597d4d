package populate

import (
	"strings"
	"time"

	"github.com/gamevault/gamevault/internal/entity"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
)

// dateLayouts are the formats the provider has been observed using for
// date fields. Values that match none of them are treated as absent.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// malformedItemError reports a provider record that cannot be turned into
// an entity, e.g. one with a blank name.
func malformedItemError(kind string, externalID int, reason string) error {
	return errors.Newf("malformed %s item %d: %s", kind, externalID, reason).
		Component("populate").
		Category(errors.CategoryValidation).
		Context("kind", kind).
		Context("external_id", externalID).
		Build()
}

// unresolvedReferenceError reports an item whose required reference does
// not map to any stored record of the referenced kind.
func unresolvedReferenceError(kind string, externalID int, refKind string, refExternalID int) error {
	return errors.Newf("%s item %d references unknown %s %d", kind, externalID, refKind, refExternalID).
		Component("populate").
		Category(errors.CategoryNotFound).
		Context("kind", kind).
		Context("external_id", externalID).
		Context("ref_kind", refKind).
		Context("ref_external_id", refExternalID).
		Build()
}

// missingReferenceError reports an item whose required reference is absent
// from the provider payload altogether.
func missingReferenceError(kind string, externalID int, refKind string) error {
	return errors.Newf("%s item %d has no %s reference", kind, externalID, refKind).
		Component("populate").
		Category(errors.CategoryNotFound).
		Context("kind", kind).
		Context("external_id", externalID).
		Context("ref_kind", refKind).
		Build()
}

func imageURL(img *giantbomb.Image) *string {
	if img == nil || img.OriginalURL == "" {
		return nil
	}
	url := img.OriginalURL
	return &url
}

func guidPtr(guid string) *string {
	if guid == "" {
		return nil
	}
	return &guid
}

func parseDate(value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*value)); err == nil {
			return &t
		}
	}
	return nil
}

func externalID(id int) *int {
	return &id
}

func transformRatingBoard(raw giantbomb.RatingBoardResult) (*entity.RatingBoard, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return nil, malformedItemError("rating board", raw.ID, "missing name")
	}
	return &entity.RatingBoard{
		Name:           raw.Name,
		Summary:        raw.Deck,
		Description:    raw.Description,
		MainImage:      imageURL(raw.Image),
		ExternalID:     externalID(raw.ID),
		GUID:           guidPtr(raw.GUID),
		ExternalSource: entity.SourceGiantBomb,
	}, nil
}

func transformRating(raw giantbomb.GameRatingResult, boards map[int]uint) (*entity.Rating, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return nil, malformedItemError("rating", raw.ID, "missing name")
	}
	if raw.RatingBoard == nil {
		return nil, missingReferenceError("rating", raw.ID, "rating board")
	}
	boardID, ok := resolve(boards, raw.RatingBoard.ID)
	if !ok {
		return nil, unresolvedReferenceError("rating", raw.ID, "rating board", raw.RatingBoard.ID)
	}
	return &entity.Rating{
		Name:           raw.Name,
		MainImage:      imageURL(raw.Image),
		RatingBoardID:  boardID,
		ExternalID:     externalID(raw.ID),
		GUID:           guidPtr(raw.GUID),
		ExternalSource: entity.SourceGiantBomb,
	}, nil
}

func transformGenre(raw giantbomb.GenreResult) (*entity.Genre, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return nil, malformedItemError("genre", raw.ID, "missing name")
	}
	return &entity.Genre{
		Name:           raw.Name,
		Summary:        raw.Deck,
		Description:    raw.Description,
		MainImage:      imageURL(raw.Image),
		ExternalID:     externalID(raw.ID),
		GUID:           guidPtr(raw.GUID),
		ExternalSource: entity.SourceGiantBomb,
	}, nil
}

func transformCompany(raw giantbomb.CompanyResult) (*entity.Company, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return nil, malformedItemError("company", raw.ID, "missing name")
	}
	return &entity.Company{
		Name:           raw.Name,
		Summary:        raw.Deck,
		Description:    raw.Description,
		Abbreviation:   raw.Abbreviation,
		DateFounded:    parseDate(raw.DateFounded),
		Website:        raw.Website,
		Aliases:        giantbomb.SplitAliases(raw.Aliases),
		MainImage:      imageURL(raw.Image),
		StreetAddress:  raw.LocationAddress,
		City:           raw.LocationCity,
		State:          raw.LocationState,
		Country:        raw.LocationCountry,
		ExternalID:     externalID(raw.ID),
		GUID:           guidPtr(raw.GUID),
		ExternalSource: entity.SourceGiantBomb,
	}, nil
}

func transformPlatform(raw giantbomb.PlatformResult, companies map[int]uint) (*entity.Platform, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return nil, malformedItemError("platform", raw.ID, "missing name")
	}
	if raw.Company == nil {
		return nil, missingReferenceError("platform", raw.ID, "company")
	}
	companyID, ok := resolve(companies, raw.Company.ID)
	if !ok {
		return nil, unresolvedReferenceError("platform", raw.ID, "company", raw.Company.ID)
	}
	return &entity.Platform{
		Name:           raw.Name,
		Summary:        raw.Deck,
		Description:    raw.Description,
		Abbreviation:   raw.Abbreviation,
		ReleaseDate:    parseDate(raw.ReleaseDate),
		Aliases:        giantbomb.SplitAliases(raw.Aliases),
		MainImage:      imageURL(raw.Image),
		CompanyID:      companyID,
		ExternalID:     externalID(raw.ID),
		GUID:           guidPtr(raw.GUID),
		ExternalSource: entity.SourceGiantBomb,
	}, nil
}

// gameRefIndexes holds the reconciliation lookups a video game transform
// draws its internal ids from.
type gameRefIndexes struct {
	genres    map[int]uint
	platforms map[int]uint
	companies map[int]uint
	ratings   map[int]uint
}

// gameDropCounts tallies the optional references dropped while
// transforming one game.
type gameDropCounts struct {
	genres     int
	platforms  int
	developers int
	publishers int
	ratings    int
}

func (d gameDropCounts) total() int {
	return d.genres + d.platforms + d.developers + d.publishers + d.ratings
}

func transformVideoGame(raw giantbomb.GameDetailResult, refs gameRefIndexes) (*entity.VideoGame, gameDropCounts, error) {
	var dropped gameDropCounts
	if strings.TrimSpace(raw.Name) == "" {
		return nil, dropped, malformedItemError("video game", raw.ID, "missing name")
	}

	game := &entity.VideoGame{
		Name:                   raw.Name,
		Summary:                raw.Deck,
		Description:            raw.Description,
		Aliases:                giantbomb.SplitAliases(raw.Aliases),
		ReleaseDate:            parseDate(raw.OriginalReleaseDate),
		ExpectedReleaseYear:    raw.ExpectedReleaseYear,
		ExpectedReleaseQuarter: raw.ExpectedReleaseQuarter,
		ExpectedReleaseMonth:   raw.ExpectedReleaseMonth,
		ExpectedReleaseDay:     raw.ExpectedReleaseDay,
		MainImage:              imageURL(raw.Image),
		Images:                 imageURLs(raw.Images),
		ExternalID:             externalID(raw.ID),
		GUID:                   guidPtr(raw.GUID),
		ExternalSource:         entity.SourceGiantBomb,
	}

	var genreIDs, platformIDs, developerIDs, publisherIDs, ratingIDs []uint
	genreIDs, dropped.genres = resolveAll(refs.genres, raw.Genres)
	platformIDs, dropped.platforms = resolveAll(refs.platforms, raw.Platforms)
	developerIDs, dropped.developers = resolveAll(refs.companies, raw.Developers)
	publisherIDs, dropped.publishers = resolveAll(refs.companies, raw.Publishers)
	ratingIDs, dropped.ratings = resolveAll(refs.ratings, raw.OriginalGameRating)

	for _, id := range genreIDs {
		game.Genres = append(game.Genres, entity.Genre{ID: id})
	}
	for _, id := range platformIDs {
		game.Platforms = append(game.Platforms, entity.Platform{ID: id})
	}
	for _, id := range developerIDs {
		game.Developers = append(game.Developers, entity.Company{ID: id})
	}
	for _, id := range publisherIDs {
		game.Publishers = append(game.Publishers, entity.Company{ID: id})
	}
	for _, id := range ratingIDs {
		game.Ratings = append(game.Ratings, entity.Rating{ID: id})
	}

	return game, dropped, nil
}

// imageURLs collects the original urls of a game's image gallery. A game
// with no gallery keeps a nil slice rather than an empty one.
func imageURLs(images []giantbomb.Image) []string {
	var urls []string
	for i := range images {
		if images[i].OriginalURL == "" {
			continue
		}
		urls = append(urls, images[i].OriginalURL)
	}
	return urls
}
