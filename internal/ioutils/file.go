// Package ioutils provides file system utilities for the xkcd-downloader.
//
// This package contains functions for:
//   - Writing and reading comic metadata files
//   - Scanning a directory for already downloaded comics
//   - Filename sanitization
//   - Directory creation
package ioutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/handiism/xkcd-downloader/internal/model"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	multipleSpace = regexp.MustCompile(`\s+`)
)

// WriteJSON writes v to path as 4-space indented, UTF-8 JSON.
//
// HTML characters are not escaped so that titles and alt texts stay
// readable. The file is created with mode 0644 and truncated if it exists.
// Map keys, and so Metadata fields, are written in sorted order rather than
// the order the catalog sent them in.
//
// Example:
//
//	err := WriteJSON("/comics/614.json", meta)
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadMetadata reads a metadata file written by WriteJSON.
func ReadMetadata(path string) (model.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta model.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return meta, nil
}

// ScanIDs lists dir once and returns the set of comic IDs that have a file
// named "{id}{suffix}", e.g. suffix ".json".
//
// Entries whose stem is not a positive integer are ignored, as are
// directories. A missing directory yields an empty set.
//
// Example:
//
//	present, err := ScanIDs(".", ".json") // {1: {}, 2: {}, 3: {}}
func ScanIDs(dir, suffix string) (map[int]struct{}, error) {
	ids := make(map[int]struct{})

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(entry.Name(), suffix)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(stem)
		if err != nil || id <= 0 || strconv.Itoa(id) != stem {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("xkcd: 1-100")  // Returns "xkcd_ 1-100"
//	SanitizeFileName("Comics...")    // Returns "Comics"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multipleSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
