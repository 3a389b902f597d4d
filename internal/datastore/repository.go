// repository.go: per-kind persistence operations consumed by the pipeline
package datastore

import (
	"context"

	"github.com/gamevault/gamevault/internal/entity"
)

// Entity kind names used in logs and errors.
const (
	KindRatingBoard = "rating-board"
	KindRating      = "rating"
	KindGenre       = "genre"
	KindCompany     = "company"
	KindPlatform    = "platform"
	KindVideoGame   = "video-game"
)

func (ds *DataStore) GetAllRatingBoards(ctx context.Context) ([]entity.RatingBoard, error) {
	return findAll[entity.RatingBoard](ctx, ds)
}

func (ds *DataStore) RatingBoardRefs(ctx context.Context) ([]EntityRef, error) {
	return entityRefs[entity.RatingBoard](ctx, ds)
}

func (ds *DataStore) CreateRatingBoards(ctx context.Context, boards []*entity.RatingBoard) (int, error) {
	return createMany(ctx, ds, KindRatingBoard, boards, func(b *entity.RatingBoard) string { return b.Name })
}

func (ds *DataStore) GetAllRatings(ctx context.Context) ([]entity.Rating, error) {
	return findAll[entity.Rating](ctx, ds)
}

func (ds *DataStore) RatingRefs(ctx context.Context) ([]EntityRef, error) {
	return entityRefs[entity.Rating](ctx, ds)
}

func (ds *DataStore) CreateRatings(ctx context.Context, ratings []*entity.Rating) (int, error) {
	return createMany(ctx, ds, KindRating, ratings, func(r *entity.Rating) string { return r.Name })
}

func (ds *DataStore) GetAllGenres(ctx context.Context) ([]entity.Genre, error) {
	return findAll[entity.Genre](ctx, ds)
}

func (ds *DataStore) GenreRefs(ctx context.Context) ([]EntityRef, error) {
	return entityRefs[entity.Genre](ctx, ds)
}

func (ds *DataStore) CreateGenres(ctx context.Context, genres []*entity.Genre) (int, error) {
	return createMany(ctx, ds, KindGenre, genres, func(g *entity.Genre) string { return g.Name })
}

func (ds *DataStore) GetAllCompanies(ctx context.Context) ([]entity.Company, error) {
	return findAll[entity.Company](ctx, ds)
}

func (ds *DataStore) CompanyRefs(ctx context.Context) ([]EntityRef, error) {
	return entityRefs[entity.Company](ctx, ds)
}

func (ds *DataStore) CreateCompanies(ctx context.Context, companies []*entity.Company) (int, error) {
	return createMany(ctx, ds, KindCompany, companies, func(c *entity.Company) string { return c.Name })
}

func (ds *DataStore) GetAllPlatforms(ctx context.Context) ([]entity.Platform, error) {
	return findAll[entity.Platform](ctx, ds)
}

func (ds *DataStore) PlatformRefs(ctx context.Context) ([]EntityRef, error) {
	return entityRefs[entity.Platform](ctx, ds)
}

func (ds *DataStore) CreatePlatforms(ctx context.Context, platforms []*entity.Platform) (int, error) {
	return createMany(ctx, ds, KindPlatform, platforms, func(p *entity.Platform) string { return p.Name })
}

func (ds *DataStore) GetAllVideoGames(ctx context.Context) ([]entity.VideoGame, error) {
	var out []entity.VideoGame
	err := ds.DB.WithContext(ctx).
		Preload("Genres").
		Preload("Platforms").
		Preload("Developers").
		Preload("Publishers").
		Preload("Ratings").
		Find(&out).Error
	if err != nil {
		return nil, dbError(err, "find-all", "kind", KindVideoGame)
	}
	return out, nil
}

func (ds *DataStore) VideoGameRefs(ctx context.Context) ([]EntityRef, error) {
	return entityRefs[entity.VideoGame](ctx, ds)
}

func (ds *DataStore) CreateVideoGames(ctx context.Context, games []*entity.VideoGame) (int, error) {
	return createMany(ctx, ds, KindVideoGame, games, func(g *entity.VideoGame) string { return g.Name })
}
