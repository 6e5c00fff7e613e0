package xkcd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	status int
	meta   model.Metadata
	err    error
	urls   []string
}

func (s *stubFetcher) GetJSON(_ context.Context, url string) (int, model.Metadata, error) {
	s.urls = append(s.urls, url)
	return s.status, s.meta, s.err
}

func latest(n int) *stubFetcher {
	return &stubFetcher{status: http.StatusOK, meta: model.Metadata{"num": float64(n), "img": "x.png"}}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
}

func gaps(ids ...int) map[int]struct{} {
	set := make(map[int]struct{})
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestCatalog_URLs(t *testing.T) {
	for _, base := range []string{"https://xkcd.com", "https://xkcd.com/"} {
		c := NewCatalog(base)
		assert.Equal(t, "https://xkcd.com/614/info.0.json", c.MetadataURL(614))
		assert.Equal(t, "https://xkcd.com/info.0.json", c.LatestURL())
		assert.Equal(t, "https://xkcd.com", c.BaseURL())
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name      string
		img       any
		wantPrime string
		wantFile  string
		wantExt   string
		wantErr   bool
	}{
		{
			name:      "png",
			img:       "https://x.com/path/name.png",
			wantPrime: "https://x.com/path/name_2x.png",
			wantFile:  "7.png",
			wantExt:   "png",
		},
		{
			name:      "jpeg with dots in name",
			img:       "https://imgs.xkcd.com/comics/a.b.c.jpeg",
			wantPrime: "https://imgs.xkcd.com/comics/a.b.c_2x.jpeg",
			wantFile:  "7.jpeg",
			wantExt:   "jpeg",
		},
		{name: "missing", img: nil, wantErr: true},
		{name: "not a string", img: 12.0, wantErr: true},
		{name: "no extension", img: "https://imgs.xkcd.com/comics/", wantErr: true},
		{name: "dot only in host", img: "https://xkcd.com/comics/name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := model.Metadata{"num": 7.0}
			if tt.img != nil {
				meta["img"] = tt.img
			}

			target, err := ResolveTarget(7, meta)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoImage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 7, target.ID)
			assert.Equal(t, []string{tt.wantPrime, tt.img.(string)}, target.Candidates)
			assert.Equal(t, tt.wantFile, target.FileName)
			assert.Equal(t, tt.wantExt, target.Ext)
		})
	}
}

func TestReconcile_ExcludesKnownGap(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1.json", "2.json", "3.json")

	fetcher := latest(5)
	r := NewReconciler(NewCatalog("https://xkcd.com"), fetcher, gaps(4))

	result, err := r.Reconcile(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Latest)
	assert.Equal(t, []int{5}, result.Missing)
	assert.False(t, result.NothingMissing())
	assert.Equal(t, []string{"https://xkcd.com/info.0.json"}, fetcher.urls)
}

func TestReconcile_OnlyJSONCountsAsPresent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1.json", "2.png", "3_thumb.jpg")

	r := NewReconciler(NewCatalog("https://xkcd.com"), latest(3), nil)
	result, err := r.Reconcile(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, result.Missing)
}

func TestReconcile_NothingMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1.json", "2.json", "3.json")

	r := NewReconciler(NewCatalog("https://xkcd.com"), latest(4), gaps(4))
	result, err := r.Reconcile(context.Background(), dir)

	require.NoError(t, err)
	assert.True(t, result.NothingMissing())
	assert.Empty(t, result.Missing)
}

func TestReconcile_GapAbsentFromMissingIsNoop(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "404.json")

	r := NewReconciler(NewCatalog("https://xkcd.com"), latest(3), gaps(404, 2))
	result, err := r.Reconcile(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, result.Missing)
}

func TestReconcile_EmptyDirectory(t *testing.T) {
	r := NewReconciler(NewCatalog("https://xkcd.com"), latest(3), nil)
	result, err := r.Reconcile(context.Background(), filepath.Join(t.TempDir(), "new"))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result.Missing)
}

func TestReconcile_CatalogLookupFailure(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
	}{
		{name: "transport error", fetcher: &stubFetcher{err: errors.New("connection refused")}},
		{name: "non-200", fetcher: &stubFetcher{status: http.StatusServiceUnavailable}},
		{name: "no num", fetcher: &stubFetcher{status: http.StatusOK, meta: model.Metadata{"img": "x.png"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler(NewCatalog("https://xkcd.com"), tt.fetcher, nil)
			_, err := r.Reconcile(context.Background(), t.TempDir())
			assert.ErrorIs(t, err, ErrCatalogLookup)
		})
	}
}
