// Package config provides configuration management for xkcd-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Derived values such as the User-Agent header and the inter-item delay
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Catalog https://xkcd.com, output to the current directory
//	// Images and JSON saved, 0.5s between comics
//	// Comic #404 treated as a known gap
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.Delay = 0
//	err := settings.Save("/path/to/config.json")
package config
