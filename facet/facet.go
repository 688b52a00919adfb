// Package facet owns the aggregation-to-display round trip: it asks the
// catalog for a fine-grained price histogram, adapts it to canonical
// buckets and collapses those into a handful of display bands.
package facet

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"pricebands/histogram"
	"pricebands/product"
	"pricebands/search"
)

// Config used to create a new Service
type Config struct {
	Repo product.Repo
}

func NewService(config *Config) (*Service, error) {
	if config.Repo == nil {
		return nil, errors.New("facet: a product repo is required")
	}

	return &Service{repo: config.Repo}, nil
}

type Service struct {
	// the catalog playing the aggregation backend
	repo product.Repo
}

// PriceBands aggregates product prices into fixed-width buckets of the given
// interval and collapses them to at most targetCount display bands.
// Failures surface verbatim; there is no partial result
func (s *Service) PriceBands(interval decimal.Decimal, targetCount int) ([]histogram.Bucket, error) {
	raw, err := s.repo.PriceHistogram(interval)
	if err != nil {
		return nil, fmt.Errorf("aggregating prices: %w", err)
	}
	if len(raw) == 0 {
		return nil, histogram.ErrEmptyDistribution
	}

	buckets, err := search.ToHistogram(raw)
	if err != nil {
		return nil, err
	}

	return histogram.Collapse(buckets, targetCount)
}

// Quantile pairs a cumulative fraction with the price at or below which
// that fraction of the catalog falls
type Quantile struct {
	Q     float64
	Price float64
}

// PriceQuantiles reports the empirical price distribution of the catalog at
// the given cumulative fractions (each in [0, 1])
func (s *Service) PriceQuantiles(qs ...float64) ([]Quantile, error) {
	products, err := s.repo.Find()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, histogram.ErrEmptyDistribution
	}

	prices := make([]float64, 0, len(products))
	for _, p := range products {
		prices = append(prices, p.Price.InexactFloat64())
	}
	sort.Float64s(prices)

	quantiles := make([]Quantile, 0, len(qs))
	for _, q := range qs {
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("%w: quantile %v outside [0, 1]", histogram.ErrInvalidArgument, q)
		}
		quantiles = append(quantiles, Quantile{
			Q:     q,
			Price: stat.Quantile(q, stat.Empirical, prices, nil),
		})
	}

	return quantiles, nil
}
