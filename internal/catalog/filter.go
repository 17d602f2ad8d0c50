package catalog

// MediaFilter specifies criteria for listing media items.
type MediaFilter struct {
	Type      *MediaType
	TMDBID    *int64
	Genre     *string  // genre name, matched case-insensitively
	Service   *string  // only items available on this service
	MinRating *float64 // aggregate rating floor
	Query     *string  // substring match on title, original title, or cast
	YearFrom  *int
	YearTo    *int
	Limit     int // 0 = no limit
	Offset    int
}
