package download

// Outcome is the terminal state of a single comic.
type Outcome int

const (
	// OutcomeSuccess means every requested file was written.
	OutcomeSuccess Outcome = iota

	// OutcomePartial means the metadata was handled but no image candidate
	// could be downloaded.
	OutcomePartial

	// OutcomeFailed means the metadata could not be fetched or saved.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartial:
		return "partial"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// ItemResult records what happened to one comic.
type ItemResult struct {
	ID      int
	Outcome Outcome

	// ImageURL is the candidate the image was saved from, if any.
	ImageURL string

	// Bytes is the size of the saved image.
	Bytes int64

	Err error
}

// Report summarizes a batch run.
type Report struct {
	Requested int
	Items     []ItemResult
	Bytes     int64
	Aborted   bool
}

func (r *Report) add(item ItemResult) {
	r.Items = append(r.Items, item)
	r.Bytes += item.Bytes
}

// Count returns the number of comics that ended in outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}

// HasFailures reports whether any comic was not fully downloaded.
func (r *Report) HasFailures() bool {
	return r.Count(OutcomeSuccess) != len(r.Items)
}
