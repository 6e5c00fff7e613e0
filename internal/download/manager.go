package download

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/handiism/xkcd-downloader/internal/config"
	"github.com/handiism/xkcd-downloader/internal/ioutils"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/handiism/xkcd-downloader/internal/xkcd"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// ID is the comic the event refers to, 0 for batch-level events.
	ID int

	// Current and Total give the position of ID in the batch (1-based).
	Current int
	Total   int
}

// Fetcher is the network side of the Manager. *http.Client satisfies it.
type Fetcher interface {
	GetJSON(ctx context.Context, url string) (int, model.Metadata, error)
	DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error
}

// Manager downloads comics one after another.
type Manager struct {
	settings *config.Settings
	fetcher  Fetcher
	catalog  *xkcd.Catalog
	images   *ioutils.ImageService

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, fetcher Fetcher, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		fetcher:    fetcher,
		catalog:    xkcd.NewCatalog(settings.BaseURL),
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}
}

// Reconcile lists the comics missing from the output directory.
func (m *Manager) Reconcile(ctx context.Context) (xkcd.Reconciliation, error) {
	reconciler := xkcd.NewReconciler(m.catalog, m.fetcher, m.settings.KnownGapSet())
	result, err := reconciler.Reconcile(ctx, m.settings.OutputDir)
	if err != nil {
		return result, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Latest comic is #%d, %d missing locally", result.Latest, len(result.Missing)),
		Level:   LevelVerbose,
	})
	return result, nil
}

// Run downloads ids in order, pausing settings.Delay between comics.
//
// Failures of individual comics are reported through events and the
// returned Report; they never stop the batch. The only error returned is
// the context error when ctx is cancelled (the Report is then marked
// Aborted and holds the comics processed so far), or a failure to create
// the output directory.
func (m *Manager) Run(ctx context.Context, ids []int) (*Report, error) {
	report := &Report{Requested: len(ids)}

	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return report, fmt.Errorf("create output directory: %w", err)
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			report.Aborted = true
			return report, err
		}

		result := m.processComic(ctx, id, i+1, len(ids))
		report.add(result)

		if err := ctx.Err(); err != nil {
			report.Aborted = true
			return report, err
		}

		if i < len(ids)-1 {
			if err := m.wait(ctx); err != nil {
				report.Aborted = true
				return report, err
			}
		}
	}

	return report, nil
}

// processComic walks one comic through metadata, image and JSON steps.
func (m *Manager) processComic(ctx context.Context, id, current, total int) ItemResult {
	result := ItemResult{ID: id}
	event := func(level ProgressLevel, format string, args ...any) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf(format, args...),
			Level:   level,
			ID:      id,
			Current: current,
			Total:   total,
		})
	}

	event(LevelInfo, "Downloading #%d", id)

	meta, err := m.fetchMetadata(ctx, id)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		if ctx.Err() == nil {
			event(LevelError, "Error: %v", err)
		}
		return result
	}

	result.Outcome = OutcomeSuccess

	if m.settings.SaveImages {
		imageURL, written, err := m.downloadImage(ctx, id, meta, event)
		if ctx.Err() != nil {
			result.Outcome = OutcomeFailed
			result.Err = ctx.Err()
			return result
		}
		if err != nil {
			result.Outcome = OutcomePartial
			result.Err = err
			event(LevelError, "Unable to download image for #%d (%v)", id, err)
		} else {
			meta.SetDownloadedImage(imageURL)
			result.ImageURL = imageURL
			result.Bytes = written
		}
	}

	if m.settings.SaveJSON {
		path := filepath.Join(m.settings.OutputDir, model.JSONFileName(id))
		if err := ioutils.WriteJSON(path, meta); err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			event(LevelError, "Error saving %s: %v", path, err)
			return result
		}
		event(LevelVerbose, "Saved %s", path)
	}

	if result.Outcome == OutcomeSuccess {
		event(LevelSuccess, "#%d %s", id, meta.Title())
	}
	return result
}

func (m *Manager) fetchMetadata(ctx context.Context, id int) (model.Metadata, error) {
	url := m.catalog.MetadataURL(id)
	status, meta, err := m.fetcher.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", status, url)
	}
	return meta, nil
}

// downloadImage tries each candidate URL in order and returns the one that
// was saved. The error of the last attempt is returned when all fail.
func (m *Manager) downloadImage(ctx context.Context, id int, meta model.Metadata, event func(ProgressLevel, string, ...any)) (string, int64, error) {
	target, err := xkcd.ResolveTarget(id, meta)
	if err != nil {
		return "", 0, err
	}

	dest := filepath.Join(m.settings.OutputDir, target.FileName)
	var lastErr error
	for _, candidate := range target.Candidates {
		if ctx.Err() != nil {
			return "", 0, ctx.Err()
		}

		var written int64
		event(LevelVerbose, "Fetching %s", candidate)
		lastErr = m.fetcher.DownloadFile(ctx, candidate, dest, func(n, _ int64) {
			written = n
		})
		if lastErr == nil {
			event(LevelVerbose, "Saved %s", dest)
			m.thumbnail(ctx, id, dest, event)
			return candidate, written, nil
		}
		event(LevelVerbose, "%s unavailable: %v", candidate, lastErr)
	}

	return "", 0, lastErr
}

func (m *Manager) thumbnail(ctx context.Context, id int, src string, event func(ProgressLevel, string, ...any)) {
	if m.settings.ThumbnailMaxSize <= 0 {
		return
	}

	dst := filepath.Join(m.settings.OutputDir, model.ThumbnailFileName(id))
	if err := m.images.WriteThumbnail(ctx, src, dst, m.settings.ThumbnailMaxSize); err != nil {
		event(LevelWarning, "Could not create thumbnail for #%d: %v", id, err)
		return
	}
	event(LevelVerbose, "Saved %s", dst)
}

func (m *Manager) wait(ctx context.Context) error {
	delay := m.settings.DelayDuration()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
