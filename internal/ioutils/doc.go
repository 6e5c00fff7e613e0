// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Writing comic metadata as indented JSON
//   - Detecting which comics are already present in a directory
//   - Filename sanitization for cross-platform compatibility
//   - Thumbnail generation
//
// # File Operations
//
//	// Persist metadata
//	err := ioutils.WriteJSON("/comics/614.json", meta)
//
//	// Which comics are already downloaded?
//	present, err := ioutils.ScanIDs("/comics", ".json")
//
// # Image Processing
//
// The ImageService turns downloaded comics into thumbnails:
//
//	svc := ioutils.NewImageService()
//	err := svc.WriteThumbnail(ctx, "614.png", "614_thumb.jpg", 300)
package ioutils
