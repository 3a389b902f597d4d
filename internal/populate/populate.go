// Package populate implements the catalog population pipeline: it pulls
// paginated records from the metadata provider, transforms them into
// catalog entities, reconciles cross-entity references and persists each
// page as one batch.
package populate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gamevault/gamevault/internal/conf"
	"github.com/gamevault/gamevault/internal/datastore"
	"github.com/gamevault/gamevault/internal/entity"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
	"github.com/gamevault/gamevault/internal/logging"
	"github.com/gamevault/gamevault/internal/observability"
)

// Package-level logger specific to the populate service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "populate.log")
	serviceLevelVar.Set(slog.LevelDebug)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "populate", serviceLevelVar)
	if err != nil {
		log.Printf("FATAL: Failed to initialize populate file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "populate")
		closeLogger = func() error { return nil }
	}
}

// Fetcher is the slice of the provider client the pipeline consumes.
type Fetcher interface {
	FetchPage(ctx context.Context, resource string, offset, limit int) (*giantbomb.Page, error)
	FetchDetail(ctx context.Context, resource, guid string, out any) error
}

// Skip reasons recorded in logs and metrics when an item is absorbed
// instead of persisted.
const (
	SkipReasonMalformed  = "malformed"
	SkipReasonUnresolved = "unresolved-reference"
	SkipReasonDetail     = "detail-fetch"
)

// Summary is the outcome of one population run for one entity kind.
type Summary struct {
	Kind    string
	Fetched int
	Saved   int
	Skipped int
}

func (s *Summary) String() string {
	return fmt.Sprintf("%s population finished: fetched=%d saved=%d skipped=%d",
		s.Kind, s.Fetched, s.Saved, s.Skipped)
}

// Populator drives the fetch, transform, reconcile and persist stages for
// every entity kind.
type Populator struct {
	client   Fetcher
	store    datastore.Interface
	settings *conf.Settings
	metrics  *observability.PopulateMetrics
}

// New creates a populator. Metrics may be nil when observability is not
// wired up, e.g. in one-shot CLI runs.
func New(client Fetcher, store datastore.Interface, settings *conf.Settings, metrics *observability.PopulateMetrics) *Populator {
	return &Populator{
		client:   client,
		store:    store,
		settings: settings,
		metrics:  metrics,
	}
}

func (p *Populator) pageSize() int {
	if p.settings != nil && p.settings.Provider.PageSize > 0 {
		return p.settings.Provider.PageSize
	}
	return 100
}

// skipReason classifies an absorbed per-item error for logs and metrics.
func skipReason(err error) string {
	switch {
	case errors.IsCategory(err, errors.CategoryValidation):
		return SkipReasonMalformed
	case errors.IsCategory(err, errors.CategoryNotFound):
		return SkipReasonUnresolved
	default:
		return SkipReasonDetail
	}
}

// runPaged walks every page of one list resource, transforms each item and
// persists each page as a single batch. Transform failures skip the item;
// fetch and persistence failures abort the run.
func runPaged[R, E any](
	ctx context.Context,
	p *Populator,
	kind, resource string,
	transform func(ctx context.Context, raw R) (*E, error),
	create func(ctx context.Context, items []*E) (int, error),
) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Kind: kind}
	limit := p.pageSize()
	offset := 0
	totalExpected := 0

	for summary.Fetched == 0 || summary.Fetched < totalExpected {
		page, err := p.client.FetchPage(ctx, resource, offset, limit)
		if err != nil {
			p.recordRun(kind, "failed", start)
			logger.Error("page fetch failed, aborting run",
				"kind", kind, "offset", offset, "fetched", summary.Fetched, "error", err)
			return summary, errors.Newf("populating %s: %w", kind, err).
				Component("populate").
				Category(errors.CategoryNetwork).
				Context("kind", kind).
				Context("offset", offset).
				Build()
		}
		if totalExpected == 0 {
			totalExpected = page.NumberOfTotalResults
		}

		var raws []R
		if err := json.Unmarshal(page.Results, &raws); err != nil {
			p.recordRun(kind, "failed", start)
			return summary, errors.Newf("decoding %s page at offset %d: %w", kind, offset, err).
				Component("populate").
				Category(errors.CategoryFileParsing).
				Context("kind", kind).
				Context("offset", offset).
				Build()
		}
		if len(raws) == 0 {
			// Empty page with a non-zero expected total means the
			// provider's count is stale; stop rather than loop forever.
			break
		}

		batch := make([]*E, 0, len(raws))
		for i := range raws {
			item, err := transform(ctx, raws[i])
			if err != nil {
				reason := skipReason(err)
				summary.Skipped++
				p.metrics.RecordSkipped(kind, reason)
				logger.Warn("skipping item", "kind", kind, "reason", reason, "error", err)
				continue
			}
			batch = append(batch, item)
		}

		summary.Fetched += len(raws)
		p.metrics.RecordFetched(kind, len(raws))

		created, err := create(ctx, batch)
		if err != nil {
			p.recordRun(kind, "failed", start)
			logger.Error("batch persistence failed, aborting run",
				"kind", kind, "offset", offset, "batch_size", len(batch), "error", err)
			return summary, err
		}
		summary.Saved += created
		p.metrics.RecordSaved(kind, created)

		logger.Debug("page processed",
			"kind", kind, "offset", offset, "page_items", len(raws),
			"saved", created, "total_expected", totalExpected)
		offset += len(raws)
	}

	p.recordRun(kind, "success", start)
	logger.Info("population run finished",
		"kind", kind, "fetched", summary.Fetched, "saved", summary.Saved, "skipped", summary.Skipped)
	return summary, nil
}

func (p *Populator) recordRun(kind, status string, start time.Time) {
	p.metrics.RecordRun(kind, status, time.Since(start))
}

// PopulateRatingBoards imports all rating boards.
func (p *Populator) PopulateRatingBoards(ctx context.Context) (*Summary, error) {
	return runPaged(ctx, p, datastore.KindRatingBoard, giantbomb.ResourceRatingBoards,
		func(_ context.Context, raw giantbomb.RatingBoardResult) (*entity.RatingBoard, error) {
			return transformRatingBoard(raw)
		},
		p.store.CreateRatingBoards,
	)
}

// PopulateRatings imports all game ratings. Rating boards must already be
// populated; a rating whose board cannot be resolved is skipped.
func (p *Populator) PopulateRatings(ctx context.Context) (*Summary, error) {
	boards, err := p.refIndex(ctx, datastore.KindRatingBoard, p.store.RatingBoardRefs)
	if err != nil {
		return nil, err
	}
	return runPaged(ctx, p, datastore.KindRating, giantbomb.ResourceGameRatings,
		func(_ context.Context, raw giantbomb.GameRatingResult) (*entity.Rating, error) {
			return transformRating(raw, boards)
		},
		p.store.CreateRatings,
	)
}

// PopulateGenres imports all genres.
func (p *Populator) PopulateGenres(ctx context.Context) (*Summary, error) {
	return runPaged(ctx, p, datastore.KindGenre, giantbomb.ResourceGenres,
		func(_ context.Context, raw giantbomb.GenreResult) (*entity.Genre, error) {
			return transformGenre(raw)
		},
		p.store.CreateGenres,
	)
}

// PopulateCompanies imports all companies.
func (p *Populator) PopulateCompanies(ctx context.Context) (*Summary, error) {
	return runPaged(ctx, p, datastore.KindCompany, giantbomb.ResourceCompanies,
		func(_ context.Context, raw giantbomb.CompanyResult) (*entity.Company, error) {
			return transformCompany(raw)
		},
		p.store.CreateCompanies,
	)
}

// PopulatePlatforms imports all platforms. Companies must already be
// populated; a platform whose manufacturer cannot be resolved is skipped.
func (p *Populator) PopulatePlatforms(ctx context.Context) (*Summary, error) {
	companies, err := p.refIndex(ctx, datastore.KindCompany, p.store.CompanyRefs)
	if err != nil {
		return nil, err
	}
	return runPaged(ctx, p, datastore.KindPlatform, giantbomb.ResourcePlatforms,
		func(_ context.Context, raw giantbomb.PlatformResult) (*entity.Platform, error) {
			return transformPlatform(raw, companies)
		},
		p.store.CreatePlatforms,
	)
}

// PopulateVideoGames imports all video games. Every other kind should be
// populated first; references into kinds that are missing a record are
// dropped from the game rather than failing the item.
//
// The list endpoint does not carry cross-resource references, so each game
// costs one extra detail request. A detail fetch failure skips that game.
func (p *Populator) PopulateVideoGames(ctx context.Context) (*Summary, error) {
	refs, err := p.gameRefIndexes(ctx)
	if err != nil {
		return nil, err
	}
	return runPaged(ctx, p, datastore.KindVideoGame, giantbomb.ResourceGames,
		func(ctx context.Context, raw giantbomb.GameResult) (*entity.VideoGame, error) {
			var detail giantbomb.GameDetailResult
			if err := p.client.FetchDetail(ctx, giantbomb.ResourceGame, raw.GUID, &detail); err != nil {
				return nil, errors.Newf("fetching detail for game %d: %w", raw.ID, err).
					Component("populate").
					Category(errors.CategoryNetwork).
					Context("external_id", raw.ID).
					Context("guid", raw.GUID).
					Build()
			}
			game, dropped, err := transformVideoGame(detail, refs)
			if err != nil {
				return nil, err
			}
			if n := dropped.total(); n > 0 {
				logger.Debug("dropped unresolved game references",
					"external_id", raw.ID, "name", raw.Name, "dropped", n)
			}
			return game, nil
		},
		p.store.CreateVideoGames,
	)
}

// PopulateAll runs every kind in dependency order: boards before ratings,
// companies before platforms, everything before games. It stops at the
// first failed run and returns the summaries collected so far.
func (p *Populator) PopulateAll(ctx context.Context) ([]*Summary, error) {
	runs := []func(context.Context) (*Summary, error){
		p.PopulateRatingBoards,
		p.PopulateRatings,
		p.PopulateGenres,
		p.PopulateCompanies,
		p.PopulatePlatforms,
		p.PopulateVideoGames,
	}
	summaries := make([]*Summary, 0, len(runs))
	for _, run := range runs {
		summary, err := run(ctx)
		if summary != nil {
			summaries = append(summaries, summary)
		}
		if err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}

// Populate runs the pipeline for one kind by name, plus "all".
func (p *Populator) Populate(ctx context.Context, kind string) ([]*Summary, error) {
	switch kind {
	case "all":
		return p.PopulateAll(ctx)
	case datastore.KindRatingBoard:
		return p.single(ctx, p.PopulateRatingBoards)
	case datastore.KindRating:
		return p.single(ctx, p.PopulateRatings)
	case datastore.KindGenre:
		return p.single(ctx, p.PopulateGenres)
	case datastore.KindCompany:
		return p.single(ctx, p.PopulateCompanies)
	case datastore.KindPlatform:
		return p.single(ctx, p.PopulatePlatforms)
	case datastore.KindVideoGame:
		return p.single(ctx, p.PopulateVideoGames)
	default:
		return nil, errors.Newf("unknown entity kind %q", kind).
			Component("populate").
			Category(errors.CategoryValidation).
			Context("kind", kind).
			Build()
	}
}

func (p *Populator) single(ctx context.Context, run func(context.Context) (*Summary, error)) ([]*Summary, error) {
	summary, err := run(ctx)
	if summary == nil {
		return nil, err
	}
	return []*Summary{summary}, err
}

// refIndex loads the stored refs for one kind and builds the external id
// lookup used during reconciliation.
func (p *Populator) refIndex(ctx context.Context, kind string, load func(context.Context) ([]datastore.EntityRef, error)) (map[int]uint, error) {
	refs, err := load(ctx)
	if err != nil {
		return nil, errors.Newf("loading %s refs: %w", kind, err).
			Component("populate").
			Category(errors.CategoryDatabase).
			Context("kind", kind).
			Build()
	}
	return externalIDIndex(kind, refs)
}

func (p *Populator) gameRefIndexes(ctx context.Context) (gameRefIndexes, error) {
	var refs gameRefIndexes
	var err error
	if refs.genres, err = p.refIndex(ctx, datastore.KindGenre, p.store.GenreRefs); err != nil {
		return refs, err
	}
	if refs.platforms, err = p.refIndex(ctx, datastore.KindPlatform, p.store.PlatformRefs); err != nil {
		return refs, err
	}
	if refs.companies, err = p.refIndex(ctx, datastore.KindCompany, p.store.CompanyRefs); err != nil {
		return refs, err
	}
	if refs.ratings, err = p.refIndex(ctx, datastore.KindRating, p.store.RatingRefs); err != nil {
		return refs, err
	}
	return refs, nil
}
