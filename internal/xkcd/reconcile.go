package xkcd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/handiism/xkcd-downloader/internal/ioutils"
)

// ErrCatalogLookup is returned when the latest comic cannot be determined.
var ErrCatalogLookup = errors.New("catalog lookup failed")

// Reconciliation is the outcome of comparing the catalog with a local directory.
//
// An empty Missing list is a normal result, see NothingMissing.
type Reconciliation struct {
	// Latest is the number of the most recent comic in the catalog.
	Latest int

	// Missing lists the comics to download, ascending.
	Missing []int
}

// NothingMissing reports whether every catalog comic is already present.
func (r Reconciliation) NothingMissing() bool {
	return len(r.Missing) == 0
}

// Reconciler computes which comics are not yet downloaded.
//
// Example:
//
//	r := NewReconciler(catalog, client, settings.KnownGapSet())
//	result, err := r.Reconcile(ctx, ".")
//	if err != nil {
//	    return err // no latest number, nothing can be done
//	}
//	if result.NothingMissing() {
//	    fmt.Println("Up to date")
//	}
type Reconciler struct {
	catalog   *Catalog
	fetcher   MetadataFetcher
	knownGaps map[int]struct{}
}

// NewReconciler creates a Reconciler. knownGaps are IDs the catalog never
// serves; they are never reported as missing.
func NewReconciler(catalog *Catalog, fetcher MetadataFetcher, knownGaps map[int]struct{}) *Reconciler {
	return &Reconciler{catalog: catalog, fetcher: fetcher, knownGaps: knownGaps}
}

// Latest fetches the number of the most recent comic.
//
// Any transport error, non-200 status or metadata without a valid "num"
// wraps ErrCatalogLookup.
func (r *Reconciler) Latest(ctx context.Context) (int, error) {
	url := r.catalog.LatestURL()
	status, meta, err := r.fetcher.GetJSON(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCatalogLookup, err)
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("%w: %s answered HTTP %d", ErrCatalogLookup, url, status)
	}
	latest, ok := meta.Num()
	if !ok {
		return 0, fmt.Errorf("%w: %s has no valid \"num\"", ErrCatalogLookup, url)
	}
	return latest, nil
}

// Reconcile returns the comics between 1 and the latest one that have no
// "{id}.json" in dir, excluding known gaps.
func (r *Reconciler) Reconcile(ctx context.Context, dir string) (Reconciliation, error) {
	latest, err := r.Latest(ctx)
	if err != nil {
		return Reconciliation{}, err
	}

	present, err := ioutils.ScanIDs(dir, ".json")
	if err != nil {
		return Reconciliation{}, fmt.Errorf("scan %s: %w", dir, err)
	}

	return Reconciliation{
		Latest:  latest,
		Missing: missingIDs(latest, present, r.knownGaps),
	}, nil
}

func missingIDs(latest int, present, gaps map[int]struct{}) []int {
	missing := make(map[int]struct{})
	for id := 1; id <= latest; id++ {
		if _, ok := present[id]; !ok {
			missing[id] = struct{}{}
		}
	}

	// Deleting a gap that is not in the set is a no-op.
	for gap := range gaps {
		delete(missing, gap)
	}

	ids := make([]int, 0, len(missing))
	for id := 1; id <= latest; id++ {
		if _, ok := missing[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
