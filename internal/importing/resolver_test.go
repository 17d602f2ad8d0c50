package importing

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"streamdex/internal/catalog"
	"streamdex/internal/importing/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseRawIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"empty", "", nil},
		{"single", "603", []int64{603}},
		{"comma separated", "12,34,56", []int64{12, 34, 56}},
		{"mixed separators", "12; 34\n56\t78", []int64{12, 34, 56, 78}},
		{"garbage skipped", "12,abc,-3,45", []int64{12, 45}},
		{"zero skipped", "0,7", []int64{7}},
		{"overflow skipped", "12345645578,876543456321", nil},
		{"only garbage", "abc, def", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRawIDs(tt.input))
		})
	}
}

func TestSplitTitles(t *testing.T) {
	got := splitTitles("The Matrix\nInception, Heat\n\n  ")
	assert.Equal(t, []string{"The Matrix", "Inception", "Heat"}, got)
}

func TestTitlesFromCSV(t *testing.T) {
	csv := "rank,title,year\n" +
		"1,The Matrix,1999\n" +
		"2,\"Crouching Tiger, Hidden Dragon\",2000\n" +
		"3,,1990\n"

	titles, err := titlesFromCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"The Matrix", "Crouching Tiger, Hidden Dragon"}, titles)
}

func TestResolver_RawIDsAndTitles(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().
		SearchMovieID(gomock.Any(), "The Matrix", "DE").
		Return(int64(603), true, nil)

	r := NewResolver(meta, discardLogger())
	ids, err := r.Resolve(context.Background(), Request{
		Type:   catalog.MediaTypeMovie,
		RawIDs: "550, 680",
		Titles: "The Matrix",
		Region: "DE",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{550, 680, 603}, ids, "raw IDs come before resolved titles")
}

func TestResolver_Deduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)

	r := NewResolver(meta, discardLogger())
	ids, err := r.Resolve(context.Background(), Request{
		Type:   catalog.MediaTypeMovie,
		RawIDs: "5,5,5,7,5",
		Region: "DE",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, ids)
}

func TestResolver_UnresolvedTitlesDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().
		SearchMovieID(gomock.Any(), "No Such Film", "DE").
		Return(int64(0), false, nil)
	meta.EXPECT().
		SearchMovieID(gomock.Any(), "Heat", "DE").
		Return(int64(949), true, nil)

	r := NewResolver(meta, discardLogger())
	ids, err := r.Resolve(context.Background(), Request{
		Type:   catalog.MediaTypeMovie,
		Titles: "No Such Film\nHeat",
		Region: "DE",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{949}, ids, "unresolvable title drops without failing the run")
}

func TestResolver_CSVUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().
		SearchSeriesID(gomock.Any(), "Breaking Bad", "DE").
		Return(int64(1396), true, nil)

	r := NewResolver(meta, discardLogger())
	ids, err := r.Resolve(context.Background(), Request{
		Type:   catalog.MediaTypeSeries,
		CSV:    strings.NewReader("rank,title\n1,Breaking Bad\n"),
		Region: "DE",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1396}, ids)
}

func TestResolver_UseTopWinsOverOtherInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().
		TopMovies(gomock.Any(), "DE").
		Return([]int64{1, 2, 3}, nil)

	r := NewResolver(meta, discardLogger())
	ids, err := r.Resolve(context.Background(), Request{
		Type:   catalog.MediaTypeMovie,
		RawIDs: "550",
		Titles: "The Matrix",
		UseTop: true,
		Region: "DE",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids, "top list replaces all other inputs")
}
