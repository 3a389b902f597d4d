// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"context"

	"gorm.io/gorm"

	"github.com/gamevault/gamevault/internal/conf"
	"github.com/gamevault/gamevault/internal/entity"
)

// EntityRef is the partial record used to build reconciliation lookup maps
// cheaply, without loading full rows.
type EntityRef struct {
	ID         uint
	ExternalID *int
	Name       string
}

// Interface abstracts the underlying database implementation and defines the
// operations consumed by the population pipeline and the API layer.
type Interface interface {
	Open() error
	Close() error

	GetAllRatingBoards(ctx context.Context) ([]entity.RatingBoard, error)
	RatingBoardRefs(ctx context.Context) ([]EntityRef, error)
	CreateRatingBoards(ctx context.Context, boards []*entity.RatingBoard) (int, error)

	GetAllRatings(ctx context.Context) ([]entity.Rating, error)
	RatingRefs(ctx context.Context) ([]EntityRef, error)
	CreateRatings(ctx context.Context, ratings []*entity.Rating) (int, error)

	GetAllGenres(ctx context.Context) ([]entity.Genre, error)
	GenreRefs(ctx context.Context) ([]EntityRef, error)
	CreateGenres(ctx context.Context, genres []*entity.Genre) (int, error)

	GetAllCompanies(ctx context.Context) ([]entity.Company, error)
	CompanyRefs(ctx context.Context) ([]EntityRef, error)
	CreateCompanies(ctx context.Context, companies []*entity.Company) (int, error)

	GetAllPlatforms(ctx context.Context) ([]entity.Platform, error)
	PlatformRefs(ctx context.Context) ([]EntityRef, error)
	CreatePlatforms(ctx context.Context, platforms []*entity.Platform) (int, error)

	GetAllVideoGames(ctx context.Context) ([]entity.VideoGame, error)
	VideoGameRefs(ctx context.Context) ([]EntityRef, error)
	CreateVideoGames(ctx context.Context, games []*entity.VideoGame) (int, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB        *gorm.DB
	normalize func(string) string
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	normalize := NewKeyNormalizer(settings.Dedup.Normalize)
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			DataStore: DataStore{normalize: normalize},
			Settings:  settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			DataStore: DataStore{normalize: normalize},
			Settings:  settings,
		}
	default:
		return nil
	}
}
