// Package epub bundles downloaded comics into a single EPUB book.
package epub

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/handiism/xkcd-downloader/internal/ioutils"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/handiism/xkcd-downloader/internal/xkcd"
)

// ErrNothingToBundle is returned when none of the requested comics is on disk.
var ErrNothingToBundle = errors.New("no downloaded comics to bundle")

// Result describes a written book.
type Result struct {
	Path    string
	Added   []int
	Skipped []int
}

// Builder reads "{id}.json" and "{id}.{ext}" pairs from a directory.
type Builder struct {
	dir    string
	title  string
	author string
}

// NewBuilder creates a Builder reading comics from dir.
func NewBuilder(dir, title, author string) *Builder {
	return &Builder{dir: dir, title: title, author: author}
}

// Build writes an EPUB with one section per comic to dest.
//
// When ids is empty every comic with a metadata file in the directory is
// included, ascending. Comics whose metadata or image is missing are
// skipped and listed in Result.Skipped.
func (b *Builder) Build(ids []int, dest string) (*Result, error) {
	if len(ids) == 0 {
		present, err := ioutils.ScanIDs(b.dir, ".json")
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", b.dir, err)
		}
		for id := range present {
			ids = append(ids, id)
		}
		slices.Sort(ids)
	}

	book, err := epub.NewEpub(b.title)
	if err != nil {
		return nil, fmt.Errorf("failed to create EPub: %w", err)
	}
	book.SetAuthor(b.author)
	book.SetLang("en")

	result := &Result{Path: dest}
	for _, id := range ids {
		added, err := b.addComic(book, id)
		if err != nil {
			return nil, fmt.Errorf("failed to add comic %d: %w", id, err)
		}
		if added {
			result.Added = append(result.Added, id)
		} else {
			result.Skipped = append(result.Skipped, id)
		}
	}

	if len(result.Added) == 0 {
		return result, ErrNothingToBundle
	}

	if first, last := result.Added[0], result.Added[len(result.Added)-1]; first != last {
		book.SetDescription(fmt.Sprintf("Comics #%d to #%d", first, last))
	}

	if err := book.Write(dest); err != nil {
		return nil, fmt.Errorf("failed to write EPub: %w", err)
	}
	return result, nil
}

// addComic adds one comic section. It reports false when files are missing.
func (b *Builder) addComic(book *epub.Epub, id int) (bool, error) {
	meta, err := ioutils.ReadMetadata(filepath.Join(b.dir, model.JSONFileName(id)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	// The saved image may come from a different candidate than "img", but
	// every candidate shares the extension.
	target, err := xkcd.ResolveTarget(id, meta)
	if err != nil {
		return false, nil
	}
	imagePath := filepath.Join(b.dir, target.FileName)
	if _, err := os.Stat(imagePath); err != nil {
		return false, nil
	}

	internalPath, err := book.AddImage(imagePath, target.FileName)
	if err != nil {
		return false, fmt.Errorf("failed to add image %s: %w", target.FileName, err)
	}

	title := fmt.Sprintf("#%d: %s", id, meta.Title())

	var body strings.Builder
	fmt.Fprintf(&body, "<h1>%s</h1>\n", html.EscapeString(title))
	fmt.Fprintf(&body, `<div class="comic"><img src="%s" alt="%s" style="max-width:100%%;height:auto;"/></div>%s`,
		internalPath, html.EscapeString(meta.Title()), "\n")
	if alt := meta.Alt(); alt != "" {
		fmt.Fprintf(&body, "<p><em>%s</em></p>\n", html.EscapeString(alt))
	}

	if _, err := book.AddSection(body.String(), title, fmt.Sprintf("comic-%d.xhtml", id), ""); err != nil {
		return false, fmt.Errorf("failed to add section: %w", err)
	}
	return true, nil
}
