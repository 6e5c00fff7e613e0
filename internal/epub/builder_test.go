package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/xkcd-downloader/internal/ioutils"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeComic(t *testing.T, dir string, id int, title string, withImage bool) {
	t.Helper()

	meta := model.Metadata{
		"num":        float64(id),
		"img":        "https://imgs.xkcd.com/comics/" + strings.ToLower(title) + ".png",
		"safe_title": title,
		"alt":        "alt text for " + title,
	}
	require.NoError(t, ioutils.WriteJSON(filepath.Join(dir, model.JSONFileName(id)), meta))

	if withImage {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("%d.png", id)), buf.Bytes(), 0644))
	}
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	files := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(data)
	}
	return files
}

func TestBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	writeComic(t, dir, 1, "Barrel", true)
	writeComic(t, dir, 2, "Petit", true)
	writeComic(t, dir, 3, "Island", false)

	dest := filepath.Join(t.TempDir(), "xkcd.epub")
	result, err := NewBuilder(dir, "xkcd", "Randall Munroe").Build(nil, dest)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, result.Added)
	assert.Equal(t, []int{3}, result.Skipped)

	files := readZip(t, dest)
	assert.Equal(t, "application/epub+zip", files["mimetype"])

	var sections, images int
	for name, content := range files {
		if strings.HasSuffix(name, ".png") {
			images++
		}
		if strings.HasSuffix(name, "comic-1.xhtml") {
			sections++
			assert.Contains(t, content, "#1: Barrel")
			assert.Contains(t, content, "alt text for Barrel")
		}
		if strings.HasSuffix(name, "comic-2.xhtml") {
			sections++
		}
	}
	assert.Equal(t, 2, sections)
	assert.Equal(t, 2, images)
}

func TestBuilder_SelectedIDs(t *testing.T) {
	dir := t.TempDir()
	writeComic(t, dir, 1, "Barrel", true)
	writeComic(t, dir, 2, "Petit", true)

	dest := filepath.Join(t.TempDir(), "one.epub")
	result, err := NewBuilder(dir, "xkcd", "Randall Munroe").Build([]int{2, 9}, dest)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, result.Added)
	assert.Equal(t, []int{9}, result.Skipped)
	assert.FileExists(t, dest)
}

func TestBuilder_NothingToBundle(t *testing.T) {
	dir := t.TempDir()
	writeComic(t, dir, 1, "Barrel", false)

	dest := filepath.Join(t.TempDir(), "empty.epub")
	_, err := NewBuilder(dir, "xkcd", "Randall Munroe").Build(nil, dest)

	assert.ErrorIs(t, err, ErrNothingToBundle)
	assert.NoFileExists(t, dest)
}
