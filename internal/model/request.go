package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRequest is returned for malformed ID or range tokens.
var ErrInvalidRequest = errors.New("invalid comic request")

// MaxRequestIDs caps how many IDs one command line may expand to.
const MaxRequestIDs = 100_000

// RequestSpec is a user request for a single comic or an inclusive range.
//
// A single ID N is represented as {Start: N, End: N}.
type RequestSpec struct {
	Start int
	End   int
}

// String formats the request the way it is accepted on the command line.
func (r RequestSpec) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of IDs the request expands to.
func (r RequestSpec) Len() int {
	return r.End - r.Start + 1
}

// ParseRequest parses a single token of the form "N" or "N-M".
//
// Both bounds must be positive integers, a range must not be descending and
// it may span at most MaxRequestIDs comics. All failures wrap
// ErrInvalidRequest.
//
// Example:
//
//	ParseRequest("1045")   // {1045, 1045}
//	ParseRequest("56-129") // {56, 129}
//	ParseRequest("9-3")    // error
func ParseRequest(token string) (RequestSpec, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return RequestSpec{}, fmt.Errorf("%w: empty token", ErrInvalidRequest)
	}

	startStr, endStr, isRange := strings.Cut(token, "-")
	start, err := parseID(startStr)
	if err != nil {
		return RequestSpec{}, fmt.Errorf("%w %q: %v", ErrInvalidRequest, token, err)
	}
	if !isRange {
		return RequestSpec{Start: start, End: start}, nil
	}

	end, err := parseID(endStr)
	if err != nil {
		return RequestSpec{}, fmt.Errorf("%w %q: %v", ErrInvalidRequest, token, err)
	}
	if start > end {
		return RequestSpec{}, fmt.Errorf("%w %q: range start is greater than end", ErrInvalidRequest, token)
	}
	if end-start >= MaxRequestIDs {
		return RequestSpec{}, fmt.Errorf("%w %q: range spans more than %d comics", ErrInvalidRequest, token, MaxRequestIDs)
	}
	return RequestSpec{Start: start, End: end}, nil
}

// ParseRequests parses every token, stopping at the first invalid one.
// Together the tokens may expand to at most MaxRequestIDs comics.
func ParseRequests(tokens []string) ([]RequestSpec, error) {
	specs := make([]RequestSpec, 0, len(tokens))
	total := 0
	for _, token := range tokens {
		spec, err := ParseRequest(token)
		if err != nil {
			return nil, err
		}
		total += spec.Len()
		if total > MaxRequestIDs {
			return nil, fmt.Errorf("%w: more than %d comics requested", ErrInvalidRequest, MaxRequestIDs)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Expand flattens specs into the ordered list of IDs to visit.
//
// Specs keep their input order and ranges expand ascending, so
// ["10", "5-7"] visits 10, 5, 6, 7. Duplicates are kept. Specs that did
// not come from ParseRequests are not size checked; descending ones are
// skipped.
func Expand(specs []RequestSpec) []int {
	total := 0
	for _, spec := range specs {
		n := spec.Len()
		if n <= 0 || total > MaxRequestIDs-n {
			total = MaxRequestIDs
			break
		}
		total += n
	}

	ids := make([]int, 0, total)
	for _, spec := range specs {
		if spec.Start > spec.End {
			continue
		}
		for id := spec.Start; ; id++ {
			ids = append(ids, id)
			if id == spec.End {
				break
			}
		}
	}
	return ids
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("comic numbers start at 1, got %d", n)
	}
	return n, nil
}
