// populate_routes.go: endpoints that trigger catalog population runs
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/gamevault/internal/errors"
)

// PopulateResponse is the body returned by a completed population run.
type PopulateResponse struct {
	Kind      string            `json:"kind"`
	Summaries []PopulateSummary `json:"summaries"`
}

// PopulateSummary mirrors one pipeline run outcome.
type PopulateSummary struct {
	Kind    string `json:"kind"`
	Fetched int    `json:"fetched"`
	Saved   int    `json:"saved"`
	Skipped int    `json:"skipped"`
}

func (c *Controller) initPopulateRoutes() {
	c.Group.POST("/populate/:kind", c.PopulateKind)
}

// PopulateKind runs the population pipeline for one entity kind, or for
// every kind in dependency order when the kind is "all". Runs are
// serialized; a request arriving while another run is active is rejected.
func (c *Controller) PopulateKind(ctx echo.Context) error {
	if c.Populator == nil {
		return c.HandleError(ctx, nil, "Population is not configured", http.StatusServiceUnavailable)
	}

	kind := ctx.Param("kind")
	if !c.populateMu.TryLock() {
		return c.HandleError(ctx, nil, "A population run is already in progress", http.StatusConflict)
	}
	defer c.populateMu.Unlock()

	c.apiLogger.Info("population run requested", "kind", kind, "ip", ctx.RealIP())

	summaries, err := c.Populator.Populate(ctx.Request().Context(), kind)
	if err != nil {
		if errors.IsCategory(err, errors.CategoryValidation) {
			return c.HandleError(ctx, err, "Unknown entity kind", http.StatusBadRequest)
		}
		return c.HandleError(ctx, err, "Population run failed", http.StatusBadGateway)
	}

	resp := PopulateResponse{Kind: kind}
	for _, s := range summaries {
		resp.Summaries = append(resp.Summaries, PopulateSummary{
			Kind:    s.Kind,
			Fetched: s.Fetched,
			Saved:   s.Saved,
			Skipped: s.Skipped,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}
