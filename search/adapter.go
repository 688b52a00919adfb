// Package search translates between the aggregation backend's native
// bucket representation and the canonical decimal buckets the histogram
// package works with.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"pricebands/histogram"
)

var ErrBadBucket = errors.New("malformed aggregation bucket")

// RangeBucket is one bucket of a backend range aggregation. The backend
// reports bounds as floating point numbers and marks the open-ended first
// and last buckets with infinity sentinels
type RangeBucket struct {
	From     float64
	To       float64
	DocCount int64
}

// ToHistogram converts backend aggregation buckets to canonical buckets:
// infinity sentinels become absent bounds and floating point prices become
// exact decimals
func ToHistogram(raw []RangeBucket) ([]histogram.Bucket, error) {
	buckets := make([]histogram.Bucket, 0, len(raw))

	for i, rb := range raw {
		if rb.DocCount < 0 {
			return nil, fmt.Errorf("%w: bucket %d has negative doc count %d", ErrBadBucket, i, rb.DocCount)
		}

		b := histogram.Bucket{DocCount: rb.DocCount}

		from, ok, err := bound(rb.From)
		if err != nil {
			return nil, fmt.Errorf("%w: bucket %d lower bound", ErrBadBucket, i)
		}
		if ok {
			b.From = &from
		}

		to, ok, err := bound(rb.To)
		if err != nil {
			return nil, fmt.Errorf("%w: bucket %d upper bound", ErrBadBucket, i)
		}
		if ok {
			b.To = &to
		}

		buckets = append(buckets, b)
	}

	return buckets, nil
}

// FromHistogram renders canonical buckets back into the backend
// representation, turning absent bounds into infinity sentinels
func FromHistogram(buckets []histogram.Bucket) []RangeBucket {
	raw := make([]RangeBucket, 0, len(buckets))

	for _, b := range buckets {
		rb := RangeBucket{
			From:     math.Inf(-1),
			To:       math.Inf(1),
			DocCount: b.DocCount,
		}
		if from, ok := b.Lower(); ok {
			rb.From, _ = from.Float64()
		}
		if to, ok := b.Upper(); ok {
			rb.To, _ = to.Float64()
		}
		raw = append(raw, rb)
	}

	return raw
}

// bound maps a backend bound to a decimal, treating the infinity sentinels
// as an absent bound
func bound(v float64) (decimal.Decimal, bool, error) {
	if math.IsNaN(v) {
		return decimal.Decimal{}, false, errors.New("NaN bound")
	}
	if math.IsInf(v, 0) {
		return decimal.Decimal{}, false, nil
	}
	return decimal.NewFromFloat(v), true, nil
}
