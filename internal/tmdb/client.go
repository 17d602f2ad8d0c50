package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"streamdex/pkg/titles"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour
const posterBaseURL = "https://image.tmdb.org/t/p/w500"
const topListSize = 25

// ErrNotFound is returned when a title doesn't exist in TMDB.
var ErrNotFound = errors.New("title not found")

// Client is a TMDB API client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	movieCache  *cache[*Movie]
	seriesCache *cache[*Series]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.movieCache = newCache[*Movie](ttl)
		c.seriesCache = newCache[*Series](ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		movieCache:  newCache[*Movie](defaultCacheTTL),
		seriesCache: newCache[*Series](defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON fetches path with the given query parameters and decodes into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetMovie fetches movie metadata by TMDB ID, with availability resolved for
// the given region. Returns ErrNotFound if the ID is unknown upstream.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64, region string) (*Movie, error) {
	key := fmt.Sprintf("%d/%s", tmdbID, region)
	if movie, ok := c.movieCache.get(key); ok {
		return movie, nil
	}

	var raw movieResponse
	params := url.Values{"append_to_response": {"credits,videos,watch/providers"}}
	if err := c.getJSON(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), params, &raw); err != nil {
		return nil, err
	}

	movie := &Movie{
		ID:            raw.ID,
		Title:         raw.Title,
		OriginalTitle: raw.OriginalTitle,
		Overview:      raw.Overview,
		Year:          yearOf(raw.ReleaseDate),
		Runtime:       raw.Runtime,
		PosterURL:     posterURL(raw.PosterPath),
		TrailerURL:    trailerURL(raw.Videos),
		Director:      director(raw.Credits),
		Cast:          castNames(raw.Credits),
		Genres:        genreNames(raw.Genres),
		Services:      serviceNames(raw.WatchProviders, region),
	}

	c.movieCache.set(key, movie)
	return movie, nil
}

// GetSeries fetches series metadata by TMDB ID, including the full
// season/episode breakdown. Returns ErrNotFound if the ID is unknown upstream.
func (c *Client) GetSeries(ctx context.Context, tmdbID int64, region string) (*Series, error) {
	key := fmt.Sprintf("%d/%s", tmdbID, region)
	if series, ok := c.seriesCache.get(key); ok {
		return series, nil
	}

	var raw seriesResponse
	params := url.Values{"append_to_response": {"credits,videos,watch/providers"}}
	if err := c.getJSON(ctx, fmt.Sprintf("/3/tv/%d", tmdbID), params, &raw); err != nil {
		return nil, err
	}

	series := &Series{
		ID:            raw.ID,
		Title:         raw.Name,
		OriginalTitle: raw.OriginalName,
		Overview:      raw.Overview,
		StartYear:     yearOf(raw.FirstAirDate),
		PosterURL:     posterURL(raw.PosterPath),
		TrailerURL:    trailerURL(raw.Videos),
		Director:      director(raw.Credits),
		Cast:          castNames(raw.Credits),
		Genres:        genreNames(raw.Genres),
		Services:      serviceNames(raw.WatchProviders, region),
	}
	if !raw.InProduction {
		if end := yearOf(raw.LastAirDate); end > 0 {
			series.EndYear = &end
		}
	}

	for _, ref := range raw.Seasons {
		// Season 0 holds specials; the catalog tracks regular seasons only.
		if ref.SeasonNumber < 1 {
			continue
		}
		season, err := c.getSeason(ctx, tmdbID, ref.SeasonNumber)
		if err != nil {
			return nil, fmt.Errorf("season %d: %w", ref.SeasonNumber, err)
		}
		series.Seasons = append(series.Seasons, season)
	}

	c.seriesCache.set(key, series)
	return series, nil
}

func (c *Client) getSeason(ctx context.Context, tmdbID int64, number int) (Season, error) {
	var raw seasonResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/3/tv/%d/season/%d", tmdbID, number), nil, &raw); err != nil {
		return Season{}, err
	}

	season := Season{Number: raw.SeasonNumber, Title: raw.Name}
	for _, ep := range raw.Episodes {
		season.Episodes = append(season.Episodes, Episode{
			Number:   ep.EpisodeNumber,
			Title:    ep.Name,
			Overview: ep.Overview,
			Runtime:  ep.Runtime,
		})
	}
	return season, nil
}

// SearchMovieID resolves a free-text title to the best-matching movie ID.
// Returns (0, false, nil) when nothing matches well enough.
func (c *Client) SearchMovieID(ctx context.Context, title, region string) (int64, bool, error) {
	return c.searchID(ctx, "/3/search/movie", title, region)
}

// SearchSeriesID resolves a free-text title to the best-matching series ID.
func (c *Client) SearchSeriesID(ctx context.Context, title, region string) (int64, bool, error) {
	return c.searchID(ctx, "/3/search/tv", title, region)
}

func (c *Client) searchID(ctx context.Context, path, title, region string) (int64, bool, error) {
	var raw searchResponse
	params := url.Values{"query": {title}, "region": {region}}
	if err := c.getJSON(ctx, path, params, &raw); err != nil {
		return 0, false, err
	}
	if len(raw.Results) == 0 {
		return 0, false, nil
	}

	candidates := make([]string, len(raw.Results))
	for i, r := range raw.Results {
		candidates[i] = r.title()
	}
	match, ok := titles.BestMatch(title, candidates)
	if !ok {
		return 0, false, nil
	}
	return raw.Results[match.Index].ID, true, nil
}

// TopMovies returns the currently most popular movie IDs for a region,
// in ranking order, capped at 25 entries.
func (c *Client) TopMovies(ctx context.Context, region string) ([]int64, error) {
	return c.topIDs(ctx, "/3/movie/popular", region)
}

// TopSeries returns the currently most popular series IDs for a region.
func (c *Client) TopSeries(ctx context.Context, region string) ([]int64, error) {
	return c.topIDs(ctx, "/3/tv/popular", region)
}

func (c *Client) topIDs(ctx context.Context, path, region string) ([]int64, error) {
	var ids []int64
	for page := 1; len(ids) < topListSize; page++ {
		var raw popularResponse
		params := url.Values{"region": {region}, "page": {fmt.Sprint(page)}}
		if err := c.getJSON(ctx, path, params, &raw); err != nil {
			return nil, err
		}
		if len(raw.Results) == 0 {
			break
		}
		for _, r := range raw.Results {
			ids = append(ids, r.ID)
			if len(ids) == topListSize {
				break
			}
		}
	}
	return ids, nil
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return posterBaseURL + path
}

func trailerURL(v videos) string {
	for _, r := range v.Results {
		if r.Site == "YouTube" && r.Type == "Trailer" {
			return "https://www.youtube.com/watch?v=" + r.Key
		}
	}
	if len(v.Results) > 0 {
		return "https://www.youtube.com/watch?v=" + v.Results[0].Key
	}
	return ""
}

func director(cr credits) string {
	for _, c := range cr.Crew {
		if c.Job == "Director" {
			return c.Name
		}
	}
	return ""
}

func castNames(cr credits) []string {
	var names []string
	for _, c := range cr.Cast {
		if name := strings.TrimSpace(c.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func genreNames(refs []genreRef) []string {
	var names []string
	for _, g := range refs {
		if name := strings.TrimSpace(g.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func serviceNames(p providersResponse, region string) []string {
	entry, ok := p.Results[strings.ToUpper(region)]
	if !ok {
		return nil
	}
	var names []string
	for _, f := range entry.Flatrate {
		if name := strings.TrimSpace(f.ProviderName); name != "" {
			names = append(names, name)
		}
	}
	return names
}
