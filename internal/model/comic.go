package model

import (
	"encoding/json"
	"fmt"
)

// DownloadedImageKey is the metadata key recording which asset URL was
// actually saved to disk.
const DownloadedImageKey = "downloaded_img"

// Metadata is the decoded info.0.json document of a single comic.
//
// The catalog may add fields at any time, so Metadata is kept as a generic
// mapping and persisted back exactly as received (plus DownloadedImageKey).
// Accessors expose the handful of fields the downloader relies on.
//
// Example:
//
//	meta := model.Metadata{"num": 614.0, "img": "https://imgs.xkcd.com/comics/woodpecker.png"}
//	id, _ := meta.Num()   // 614
//	img, _ := meta.Img()  // "https://imgs.xkcd.com/comics/woodpecker.png"
type Metadata map[string]any

// Num returns the comic number stored under "num".
//
// JSON numbers decode as float64 (or json.Number when the decoder is
// configured with UseNumber); both are accepted. Returns false when the
// field is missing, not numeric, or not a positive integer.
func (m Metadata) Num() (int, bool) {
	switch v := m["num"].(type) {
	case float64:
		if v <= 0 || v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, v > 0
	case json.Number:
		n, err := v.Int64()
		if err != nil || n <= 0 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// Img returns the standard-resolution image URL stored under "img".
func (m Metadata) Img() (string, bool) {
	s, ok := m["img"].(string)
	return s, ok && s != ""
}

// Title returns the display title, preferring "safe_title".
func (m Metadata) Title() string {
	if s, ok := m["safe_title"].(string); ok && s != "" {
		return s
	}
	if s, ok := m["title"].(string); ok && s != "" {
		return s
	}
	if n, ok := m.Num(); ok {
		return fmt.Sprintf("#%d", n)
	}
	return ""
}

// Alt returns the hover text of the comic, if any.
func (m Metadata) Alt() string {
	s, _ := m["alt"].(string)
	return s
}

// SetDownloadedImage records the URL the image file was fetched from.
func (m Metadata) SetDownloadedImage(url string) {
	m[DownloadedImageKey] = url
}

// DownloadedImage returns the URL previously recorded by SetDownloadedImage.
func (m Metadata) DownloadedImage() (string, bool) {
	s, ok := m[DownloadedImageKey].(string)
	return s, ok
}

// Target describes where a comic's image can be fetched from and where it
// is saved locally.
//
// Candidates are tried in order until one succeeds. For the xkcd catalog the
// first candidate is the high-resolution "_2x" variant and the second is the
// standard image referenced by the metadata.
type Target struct {
	// ID is the comic number.
	ID int

	// Candidates holds the asset URLs in the order they should be tried.
	Candidates []string

	// Ext is the file extension taken from the asset URL, without the dot.
	Ext string

	// FileName is the local file name, "{id}.{ext}".
	FileName string
}

// JSONFileName returns the local metadata file name for a comic, "{id}.json".
func JSONFileName(id int) string {
	return fmt.Sprintf("%d.json", id)
}

// ThumbnailFileName returns the local thumbnail file name, "{id}_thumb.jpg".
func ThumbnailFileName(id int) string {
	return fmt.Sprintf("%d_thumb.jpg", id)
}
