package importing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"streamdex/internal/catalog"
	"streamdex/internal/tmdb"
)

// Status classifies the result of importing one candidate ID.
type Status int

const (
	StatusImported Status = iota
	StatusSkipped         // already in the catalog
	StatusNotFound        // unknown upstream
	StatusFailed
)

// Outcome reports the result for one candidate ID, with running progress
// counters. Imported counts successes so far, including this outcome when
// its status is StatusImported.
type Outcome struct {
	TMDBID   int64
	Title    string
	Status   Status
	Imported int
	Total    int
	Err      error
}

// Summary aggregates the outcomes of one import run.
type Summary struct {
	Total    int
	Imported int
	Skipped  int
	NotFound int
	Failed   int
}

func (s *Summary) add(o Outcome) {
	switch o.Status {
	case StatusImported:
		s.Imported++
	case StatusSkipped:
		s.Skipped++
	case StatusNotFound:
		s.NotFound++
	case StatusFailed:
		s.Failed++
	}
}

// Message renders the summary line shown to the admin after a run.
func (s Summary) Message() string {
	return fmt.Sprintf("multi-import completed (%d successful)", s.Imported)
}

// txBeginner is implemented by stores that support transactions. Stores
// without it get plain sequential writes instead.
type txBeginner interface {
	Begin() (*catalog.Tx, error)
}

// Orchestrator runs the per-ID import loop: existence check, metadata
// fetch, mapping, and persistence, each ID in its own transaction when
// the store supports one.
type Orchestrator struct {
	store Catalog
	meta  Metadata
	log   *slog.Logger
}

func NewOrchestrator(store Catalog, meta Metadata, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store: store,
		meta:  meta,
		log:   log.With("component", "import"),
	}
}

// Run imports the candidate IDs sequentially and emits one Outcome per ID
// on the returned channel, in input order. The channel is closed when the
// run finishes or ctx is cancelled. A failed ID never aborts the run.
func (o *Orchestrator) Run(ctx context.Context, ids []int64, typ catalog.MediaType, region string) <-chan Outcome {
	out := make(chan Outcome)

	go func() {
		defer close(out)

		imported := 0
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			default:
			}

			outcome := o.importOne(ctx, id, typ, region)
			if outcome.Status == StatusImported {
				imported++
			}
			outcome.Imported = imported
			outcome.Total = len(ids)

			select {
			case out <- outcome:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Collect drains an outcome channel into a summary. Used by the
// non-streaming import path.
func Collect(ch <-chan Outcome) Summary {
	var s Summary
	for o := range ch {
		s.Total++
		s.add(o)
	}
	return s
}

func (o *Orchestrator) importOne(ctx context.Context, id int64, typ catalog.MediaType, region string) Outcome {
	outcome := Outcome{TMDBID: id}

	exists, err := o.store.MediaExists(typ, id)
	if err != nil {
		o.log.Error("existence check failed", "tmdb_id", id, "error", err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	if exists {
		o.log.Debug("already in catalog, skipping", "tmdb_id", id)
		outcome.Status = StatusSkipped
		return outcome
	}

	title, err := o.fetchAndPersist(ctx, id, typ, region)
	outcome.Title = title
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		o.log.Warn("not found upstream", "tmdb_id", id)
		outcome.Status = StatusNotFound
	case errors.Is(err, catalog.ErrDuplicate):
		// Lost a race with a concurrent import of the same ID.
		outcome.Status = StatusSkipped
	case err != nil:
		o.log.Error("import failed", "tmdb_id", id, "error", err)
		outcome.Status = StatusFailed
		outcome.Err = err
	default:
		o.log.Info("imported", "tmdb_id", id, "title", title, "type", typ)
		outcome.Status = StatusImported
	}
	return outcome
}

// fetchAndPersist fetches metadata for one ID and writes it. When the
// store supports transactions the writes for this ID commit or roll back
// as a unit.
func (o *Orchestrator) fetchAndPersist(ctx context.Context, id int64, typ catalog.MediaType, region string) (string, error) {
	var persist func(Catalog) (*catalog.MediaItem, error)
	var title string

	if typ == catalog.MediaTypeSeries {
		series, err := o.meta.GetSeries(ctx, id, region)
		if err != nil {
			return "", err
		}
		title = series.Title
		persist = func(c Catalog) (*catalog.MediaItem, error) { return persistSeries(c, series) }
	} else {
		movie, err := o.meta.GetMovie(ctx, id, region)
		if err != nil {
			return "", err
		}
		title = movie.Title
		persist = func(c Catalog) (*catalog.MediaItem, error) { return persistMovie(c, movie) }
	}

	b, ok := o.store.(txBeginner)
	if !ok {
		_, err := persist(o.store)
		return title, err
	}

	tx, err := b.Begin()
	if err != nil {
		return title, err
	}
	if _, err := persist(tx); err != nil {
		_ = tx.Rollback()
		return title, err
	}
	return title, tx.Commit()
}
