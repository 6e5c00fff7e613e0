// Package xkcd knows how the comic catalog is laid out.
//
// The package handles three concerns:
//
//  1. Locating metadata endpoints for a comic number or the latest comic
//  2. Deriving the image download candidates from metadata
//  3. Reconciling the catalog with a local directory to find missing comics
//
// # Locating Comics
//
//	catalog := xkcd.NewCatalog("https://xkcd.com")
//	catalog.MetadataURL(614) // https://xkcd.com/614/info.0.json
//
// # Image Candidates
//
// The catalog publishes a high-resolution variant next to most images by
// inserting "_2x" before the extension. It is not advertised in metadata, so
// ResolveTarget lists it first and the standard image second:
//
//	target, err := xkcd.ResolveTarget(614, meta)
//	// target.Candidates = [".../woodpecker_2x.png", ".../woodpecker.png"]
//	// target.FileName   = "614.png"
//
// # Reconciliation
//
// Reconciler fetches the latest comic number and lists every comic without a
// "{id}.json" file locally, minus known gaps such as #404:
//
//	result, err := reconciler.Reconcile(ctx, ".")
//	if result.NothingMissing() {
//	    // up to date
//	}
package xkcd
