// Package importing implements the bulk-import pipeline: candidate ID
// resolution from the admin form inputs, metadata fetch, mapping into the
// catalog shape, and per-ID transactional persistence.
package importing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"streamdex/internal/catalog"
	"streamdex/internal/tmdb"
)

//go:generate mockgen -destination=mocks/mock_metadata.go -package=mocks streamdex/internal/importing Metadata

// Metadata is the upstream metadata source. *tmdb.Client satisfies it.
type Metadata interface {
	GetMovie(ctx context.Context, tmdbID int64, region string) (*tmdb.Movie, error)
	GetSeries(ctx context.Context, tmdbID int64, region string) (*tmdb.Series, error)
	SearchMovieID(ctx context.Context, title, region string) (int64, bool, error)
	SearchSeriesID(ctx context.Context, title, region string) (int64, bool, error)
	TopMovies(ctx context.Context, region string) ([]int64, error)
	TopSeries(ctx context.Context, region string) ([]int64, error)
}

// Request carries the raw admin form inputs for one bulk-import run.
type Request struct {
	Type   catalog.MediaType
	RawIDs string    // comma/whitespace separated numeric TMDB IDs
	CSV    io.Reader // optional CSV upload; titles are read from the second column
	Titles string    // free-text titles, one per line or comma separated
	UseTop bool      // ignore the inputs above and import the current popular top list
	Region string
}

// Resolver turns a Request into a deduplicated list of candidate TMDB IDs.
type Resolver struct {
	meta Metadata
	log  *slog.Logger
}

func NewResolver(meta Metadata, log *slog.Logger) *Resolver {
	return &Resolver{meta: meta, log: log.With("component", "import")}
}

// Resolve collects candidate IDs in input order: raw IDs first, then CSV
// titles, then free-text titles. Duplicates keep their first position.
// When UseTop is set all other inputs are ignored and the popular top
// list is used instead. Titles that fail to resolve are logged and
// dropped rather than failing the run.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]int64, error) {
	if req.UseTop {
		ids, err := r.topIDs(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetch top list: %w", err)
		}
		return dedupe(ids), nil
	}

	var ids []int64
	ids = append(ids, parseRawIDs(req.RawIDs)...)

	if req.CSV != nil {
		csvTitles, err := titlesFromCSV(req.CSV)
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		ids = append(ids, r.resolveTitles(ctx, req, csvTitles)...)
	}

	ids = append(ids, r.resolveTitles(ctx, req, splitTitles(req.Titles))...)

	return dedupe(ids), nil
}

func (r *Resolver) topIDs(ctx context.Context, req Request) ([]int64, error) {
	if req.Type == catalog.MediaTypeSeries {
		return r.meta.TopSeries(ctx, req.Region)
	}
	return r.meta.TopMovies(ctx, req.Region)
}

func (r *Resolver) resolveTitles(ctx context.Context, req Request, names []string) []int64 {
	var ids []int64
	for _, name := range names {
		id, ok, err := r.searchID(ctx, req, name)
		if err != nil {
			r.log.Warn("title lookup failed", "title", name, "error", err)
			continue
		}
		if !ok {
			r.log.Warn("no match for title", "title", name)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (r *Resolver) searchID(ctx context.Context, req Request, title string) (int64, bool, error) {
	if req.Type == catalog.MediaTypeSeries {
		return r.meta.SearchSeriesID(ctx, title, req.Region)
	}
	return r.meta.SearchMovieID(ctx, title, req.Region)
}

// parseRawIDs extracts positive integers from a loosely delimited string.
// Non-numeric, non-positive, and out-of-range tokens are silently skipped;
// TMDB IDs fit in 32 bits, anything larger cannot be a real ID.
func parseRawIDs(raw string) []int64 {
	fields := strings.FieldsFunc(raw, func(c rune) bool {
		return c == ',' || c == ';' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	})

	var ids []int64
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 32)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// titlesFromCSV reads titles from the second column of a CSV upload,
// skipping the header row. Rows with fewer than two columns are ignored.
func titlesFromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports vary in trailing columns

	var titles []string
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if row == 0 {
			continue // header
		}
		if len(record) < 2 {
			continue
		}
		if title := strings.TrimSpace(record[1]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// splitTitles breaks a free-text input into individual titles on
// newlines and commas.
func splitTitles(text string) []string {
	fields := strings.FieldsFunc(text, func(c rune) bool {
		return c == '\n' || c == '\r' || c == ','
	})

	var titles []string
	for _, f := range fields {
		if title := strings.TrimSpace(f); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	var out []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
