// Package http provides the HTTP client used to talk to the comic catalog.
//
// The Client in this package handles:
//   - The identifying User-Agent header ("xkcdDL/<version>")
//   - Buffered metadata fetches that hand non-200 statuses back to the caller
//   - Streaming image downloads that fail with a *StatusError
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(settings)
//
//	// Fetch metadata
//	status, meta, err := client.GetJSON(ctx, "https://xkcd.com/info.0.json")
//
//	// Download file with progress callback
//	client.DownloadFile(ctx, imgURL, "/comics/614.png", func(written, total int64) {
//	    fmt.Printf("%d bytes\n", written)
//	})
package http
