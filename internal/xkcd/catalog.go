package xkcd

import (
	"context"
	"fmt"
	"strings"

	"github.com/handiism/xkcd-downloader/internal/model"
)

// MetadataFetcher performs buffered metadata fetches.
//
// It is satisfied by *http.Client from this module; a non-200 answer is
// reported through the status, not the error.
type MetadataFetcher interface {
	GetJSON(ctx context.Context, url string) (int, model.Metadata, error)
}

// Catalog locates comics on the remote catalog.
//
// Example:
//
//	c := NewCatalog("https://xkcd.com")
//	c.MetadataURL(614) // "https://xkcd.com/614/info.0.json"
//	c.LatestURL()      // "https://xkcd.com/info.0.json"
type Catalog struct {
	baseURL string
}

// NewCatalog creates a Catalog rooted at baseURL. A trailing slash is ignored.
func NewCatalog(baseURL string) *Catalog {
	return &Catalog{baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the catalog root without trailing slash.
func (c *Catalog) BaseURL() string {
	return c.baseURL
}

// MetadataURL returns the metadata endpoint of comic id.
func (c *Catalog) MetadataURL(id int) string {
	return fmt.Sprintf("%s/%d/info.0.json", c.baseURL, id)
}

// LatestURL returns the metadata endpoint of the most recent comic.
func (c *Catalog) LatestURL() string {
	return c.baseURL + "/info.0.json"
}
