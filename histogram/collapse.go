package histogram

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when the target count or the input
	// sequence violates the Collapse preconditions
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyDistribution is returned when no bucket holds any documents
	ErrEmptyDistribution = errors.New("empty distribution")
)

// Collapse reduces a contiguous, ascending sequence of price buckets to at
// most targetCount buckets by repeatedly merging the adjacent pair with the
// smallest combined document count.
//
// Buckets with zero documents are dropped first. Once the sequence is small
// enough the first bucket is forced open below and the last open above, and
// internal bounds are stitched back together so the result stays contiguous.
//
// The input is never mutated; the result is freshly built.
func Collapse(buckets []Bucket, targetCount int) ([]Bucket, error) {
	if targetCount < 1 {
		return nil, fmt.Errorf("%w: target count %d, must be >= 1", ErrInvalidArgument, targetCount)
	}
	err := validateContiguous(buckets)
	if err != nil {
		return nil, err
	}

	// work on our own copy, keeping only buckets that hold documents
	remaining := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		if b.DocCount > 0 {
			remaining = append(remaining, b)
		}
	}
	if len(remaining) == 0 {
		return nil, ErrEmptyDistribution
	}

	for len(remaining) > targetCount {
		remaining = mergePass(remaining, targetCount)
	}

	return normalize(remaining), nil
}

// mergePass scans the sequence in consecutive triples (a, b, c) and merges
// the pair with the smaller combined count. A tie merges the left pair; the
// merged bucket is not reconsidered within the same pass. The pass stops the
// moment the sequence reaches targetCount.
func mergePass(buckets []Bucket, targetCount int) []Bucket {
	merged := false

	for i := 0; i+2 < len(buckets) && len(buckets) > targetCount; i += 2 {
		a, b, c := buckets[i], buckets[i+1], buckets[i+2]

		if b.DocCount+c.DocCount < a.DocCount+b.DocCount {
			// right pair is strictly weaker: c joins b
			buckets[i+1] = Bucket{
				From:     b.From,
				To:       c.To,
				DocCount: b.DocCount + c.DocCount,
			}
			buckets = append(buckets[:i+2], buckets[i+3:]...)
		} else {
			// left pair is weaker, or the pairs tie: a joins b
			buckets[i] = Bucket{
				From:     a.From,
				To:       b.To,
				DocCount: a.DocCount + b.DocCount,
			}
			buckets = append(buckets[:i+1], buckets[i+2:]...)
		}
		merged = true
	}

	// a pass over fewer than three buckets merges nothing; collapse the
	// remaining pair directly so the loop terminates
	if !merged && len(buckets) > targetCount {
		buckets[0] = Bucket{
			From:     buckets[0].From,
			To:       buckets[1].To,
			DocCount: buckets[0].DocCount + buckets[1].DocCount,
		}
		buckets = append(buckets[:1], buckets[2:]...)
	}

	return buckets
}

// normalize opens the outer bounds and repairs internal contiguity.
// The first bucket always reads "and below", the last "and above"; merging
// can leave a bucket's recorded lower bound stale relative to a neighbor
// that was itself just rewritten, so every internal lower bound is reset to
// its predecessor's upper bound.
func normalize(buckets []Bucket) []Bucket {
	result := make([]Bucket, len(buckets))
	copy(result, buckets)

	result[0].From = nil
	result[len(result)-1].To = nil
	for i := 1; i < len(result); i++ {
		result[i].From = result[i-1].To
	}

	return result
}

// validateContiguous checks that adjacent bounded buckets share a boundary
// exactly, with no gap or overlap
func validateContiguous(buckets []Bucket) error {
	for i := 1; i < len(buckets); i++ {
		prev, ok := buckets[i-1].Upper()
		if !ok {
			return fmt.Errorf("%w: bucket %d is unbounded above but not last", ErrInvalidArgument, i-1)
		}
		cur, ok := buckets[i].Lower()
		if !ok {
			return fmt.Errorf("%w: bucket %d is unbounded below but not first", ErrInvalidArgument, i)
		}
		if !prev.Equal(cur) {
			return fmt.Errorf("%w: buckets %d and %d are not contiguous (%s != %s)",
				ErrInvalidArgument, i-1, i, prev.String(), cur.String())
		}
	}
	return nil
}
