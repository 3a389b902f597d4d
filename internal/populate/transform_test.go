package populate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/entity"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestTransformRatingBoard(t *testing.T) {
	raw := giantbomb.RatingBoardResult{
		ID:          1,
		GUID:        "3016-1",
		Name:        "ESRB",
		Deck:        strPtr("North American rating board"),
		Description: strPtr("The Entertainment Software Rating Board."),
		Image:       &giantbomb.Image{OriginalURL: "https://img.example/esrb.png"},
	}

	board, err := transformRatingBoard(raw)
	require.NoError(t, err)
	assert.Equal(t, "ESRB", board.Name)
	assert.Equal(t, "North American rating board", *board.Summary)
	require.NotNil(t, board.MainImage)
	assert.Equal(t, "https://img.example/esrb.png", *board.MainImage)
	require.NotNil(t, board.ExternalID)
	assert.Equal(t, 1, *board.ExternalID)
	require.NotNil(t, board.GUID)
	assert.Equal(t, "3016-1", *board.GUID)
	assert.Equal(t, entity.SourceGiantBomb, board.ExternalSource)
}

func TestTransformRatingBoardMissingName(t *testing.T) {
	_, err := transformRatingBoard(giantbomb.RatingBoardResult{ID: 7, Name: "  "})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestTransformRatingBoardNoImage(t *testing.T) {
	board, err := transformRatingBoard(giantbomb.RatingBoardResult{ID: 2, Name: "PEGI"})
	require.NoError(t, err)
	assert.Nil(t, board.MainImage)
	assert.Nil(t, board.GUID)
}

func TestTransformRating(t *testing.T) {
	boards := map[int]uint{1: 10}
	raw := giantbomb.GameRatingResult{
		ID:          30,
		GUID:        "3065-30",
		Name:        "ESRB: M",
		RatingBoard: &giantbomb.Ref{ID: 1, Name: "ESRB"},
	}

	rating, err := transformRating(raw, boards)
	require.NoError(t, err)
	assert.Equal(t, "ESRB: M", rating.Name)
	assert.Equal(t, uint(10), rating.RatingBoardID)
}

func TestTransformRatingUnresolvedBoard(t *testing.T) {
	raw := giantbomb.GameRatingResult{
		ID:          31,
		Name:        "CERO: Z",
		RatingBoard: &giantbomb.Ref{ID: 99, Name: "CERO"},
	}

	_, err := transformRating(raw, map[int]uint{1: 10})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
}

func TestTransformRatingMissingBoard(t *testing.T) {
	_, err := transformRating(giantbomb.GameRatingResult{ID: 32, Name: "Unrated"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
}

func TestTransformCompany(t *testing.T) {
	raw := giantbomb.CompanyResult{
		ID:              100,
		GUID:            "3010-100",
		Name:            "Nintendo",
		Abbreviation:    strPtr("NCL"),
		Aliases:         strPtr("Nintendo Co., Ltd.\r\nNintendo EAD"),
		DateFounded:     strPtr("1889-09-23 00:00:00"),
		Website:         strPtr("https://www.nintendo.com"),
		LocationCity:    strPtr("Kyoto"),
		LocationCountry: strPtr("Japan"),
	}

	company, err := transformCompany(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nintendo Co., Ltd.", "Nintendo EAD"}, company.Aliases)
	require.NotNil(t, company.DateFounded)
	assert.Equal(t, 1889, company.DateFounded.Year())
	assert.Equal(t, time.September, company.DateFounded.Month())
	assert.Equal(t, "Kyoto", *company.City)
}

func TestTransformCompanyAbsentAliasesStayNil(t *testing.T) {
	company, err := transformCompany(giantbomb.CompanyResult{ID: 101, Name: "FromSoftware"})
	require.NoError(t, err)
	assert.Nil(t, company.Aliases)
	assert.Nil(t, company.DateFounded)
}

func TestTransformCompanyBadDateDegradesToNil(t *testing.T) {
	company, err := transformCompany(giantbomb.CompanyResult{
		ID:          102,
		Name:        "Sega",
		DateFounded: strPtr("sometime in the sixties"),
	})
	require.NoError(t, err)
	assert.Nil(t, company.DateFounded)
}

func TestTransformPlatform(t *testing.T) {
	companies := map[int]uint{100: 42}
	raw := giantbomb.PlatformResult{
		ID:           9,
		GUID:         "3045-9",
		Name:         "Super Nintendo Entertainment System",
		Abbreviation: strPtr("SNES"),
		ReleaseDate:  strPtr("1990-11-21"),
		Company:      &giantbomb.Ref{ID: 100, Name: "Nintendo"},
	}

	platform, err := transformPlatform(raw, companies)
	require.NoError(t, err)
	assert.Equal(t, uint(42), platform.CompanyID)
	require.NotNil(t, platform.ReleaseDate)
	assert.Equal(t, 1990, platform.ReleaseDate.Year())
}

func TestTransformPlatformUnresolvedCompany(t *testing.T) {
	raw := giantbomb.PlatformResult{
		ID:      10,
		Name:    "Mystery Console",
		Company: &giantbomb.Ref{ID: 555},
	}

	_, err := transformPlatform(raw, map[int]uint{})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
}

func TestTransformVideoGame(t *testing.T) {
	raw := giantbomb.GameDetailResult{
		GameResult: giantbomb.GameResult{
			ID:                  500,
			GUID:                "3030-500",
			Name:                "Metroid Prime",
			OriginalReleaseDate: strPtr("2002-11-17"),
			Image:               &giantbomb.Image{OriginalURL: "https://img.example/mp.png"},
		},
		Images: []giantbomb.Image{
			{OriginalURL: "https://img.example/mp-1.png"},
			{OriginalURL: "https://img.example/mp-2.png"},
		},
		Genres:             []giantbomb.Ref{{ID: 1}, {ID: 2}},
		Platforms:          []giantbomb.Ref{{ID: 9}},
		Developers:         []giantbomb.Ref{{ID: 100}},
		Publishers:         []giantbomb.Ref{{ID: 100}},
		OriginalGameRating: []giantbomb.Ref{{ID: 30}},
	}
	refs := gameRefIndexes{
		genres:    map[int]uint{1: 11, 2: 12},
		platforms: map[int]uint{9: 19},
		companies: map[int]uint{100: 42},
		ratings:   map[int]uint{30: 7},
	}

	game, dropped, err := transformVideoGame(raw, refs)
	require.NoError(t, err)
	assert.Zero(t, dropped.total())
	assert.Equal(t, "Metroid Prime", game.Name)
	require.NotNil(t, game.ReleaseDate)
	assert.Equal(t, 2002, game.ReleaseDate.Year())
	assert.Len(t, game.Images, 2)
	require.Len(t, game.Genres, 2)
	assert.Equal(t, uint(11), game.Genres[0].ID)
	require.Len(t, game.Platforms, 1)
	assert.Equal(t, uint(19), game.Platforms[0].ID)
	require.Len(t, game.Developers, 1)
	require.Len(t, game.Publishers, 1)
	require.Len(t, game.Ratings, 1)
	assert.Equal(t, uint(7), game.Ratings[0].ID)
}

func TestTransformVideoGamePartialReferenceResolution(t *testing.T) {
	raw := giantbomb.GameDetailResult{
		GameResult: giantbomb.GameResult{ID: 501, Name: "Obscure Game"},
		Genres:     []giantbomb.Ref{{ID: 1}, {ID: 999}},
		Platforms:  []giantbomb.Ref{{ID: 888}},
	}
	refs := gameRefIndexes{genres: map[int]uint{1: 11}}

	game, dropped, err := transformVideoGame(raw, refs)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped.total())
	require.Len(t, game.Genres, 1)
	assert.Equal(t, uint(11), game.Genres[0].ID)
	assert.Nil(t, game.Platforms)
}

func TestTransformVideoGameExpectedRelease(t *testing.T) {
	raw := giantbomb.GameDetailResult{
		GameResult: giantbomb.GameResult{
			ID:                     502,
			Name:                   "Unreleased Game",
			ExpectedReleaseYear:    intPtr(2027),
			ExpectedReleaseQuarter: intPtr(2),
		},
	}

	game, _, err := transformVideoGame(raw, gameRefIndexes{})
	require.NoError(t, err)
	assert.Nil(t, game.ReleaseDate)
	require.NotNil(t, game.ExpectedReleaseYear)
	assert.Equal(t, 2027, *game.ExpectedReleaseYear)
	assert.Equal(t, 2, *game.ExpectedReleaseQuarter)
	assert.Nil(t, game.ExpectedReleaseMonth)
	assert.Nil(t, game.Images)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  bool
	}{
		{"nil", nil, false},
		{"blank", strPtr("   "), false},
		{"date only", strPtr("1998-11-23"), true},
		{"date and time", strPtr("1998-11-23 00:00:00"), true},
		{"garbage", strPtr("late 1998"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.input)
			if tt.want {
				require.NotNil(t, got)
				assert.Equal(t, 1998, got.Year())
			} else {
				assert.Nil(t, got)
			}
		})
	}
}
