// catalog.go: read endpoints for the stored catalog entities
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/gamevault/internal/datastore"
)

// initCatalogRoutes registers one list endpoint per entity kind.
func (c *Controller) initCatalogRoutes() {
	c.Group.GET("/rating-boards", c.GetRatingBoards)
	c.Group.GET("/ratings", c.GetRatings)
	c.Group.GET("/genres", c.GetGenres)
	c.Group.GET("/companies", c.GetCompanies)
	c.Group.GET("/platforms", c.GetPlatforms)
	c.Group.GET("/video-games", c.GetVideoGames)
}

func (c *Controller) GetRatingBoards(ctx echo.Context) error {
	return c.list(ctx, datastore.KindRatingBoard, func() (any, error) {
		return c.DS.GetAllRatingBoards(ctx.Request().Context())
	})
}

func (c *Controller) GetRatings(ctx echo.Context) error {
	return c.list(ctx, datastore.KindRating, func() (any, error) {
		return c.DS.GetAllRatings(ctx.Request().Context())
	})
}

func (c *Controller) GetGenres(ctx echo.Context) error {
	return c.list(ctx, datastore.KindGenre, func() (any, error) {
		return c.DS.GetAllGenres(ctx.Request().Context())
	})
}

func (c *Controller) GetCompanies(ctx echo.Context) error {
	return c.list(ctx, datastore.KindCompany, func() (any, error) {
		return c.DS.GetAllCompanies(ctx.Request().Context())
	})
}

func (c *Controller) GetPlatforms(ctx echo.Context) error {
	return c.list(ctx, datastore.KindPlatform, func() (any, error) {
		return c.DS.GetAllPlatforms(ctx.Request().Context())
	})
}

func (c *Controller) GetVideoGames(ctx echo.Context) error {
	return c.list(ctx, datastore.KindVideoGame, func() (any, error) {
		return c.DS.GetAllVideoGames(ctx.Request().Context())
	})
}

func (c *Controller) list(ctx echo.Context, kind string, load func() (any, error)) error {
	items, err := load()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get "+kind+" records", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, items)
}
