package histogram

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bucket describes one price range and the number of documents inside it.
// The range is half-open: [From, To)
// Either bound is optional; a nil bound means the bucket is unbounded on that side
type Bucket struct {
	From     *decimal.Decimal
	To       *decimal.Decimal
	DocCount int64
}

// Lower returns the lower bound
// The bound may be absent so Lower follows the "comma ok" idiom
func (b Bucket) Lower() (decimal.Decimal, bool) {
	if b.From != nil {
		return *b.From, true
	}
	return decimal.Decimal{}, false
}

// Upper returns the upper bound
// The bound may be absent so Upper follows the "comma ok" idiom
func (b Bucket) Upper() (decimal.Decimal, bool) {
	if b.To != nil {
		return *b.To, true
	}
	return decimal.Decimal{}, false
}

// Equal reports whether two buckets have the same bounds and count.
// Bounds compare by numeric value, not by decimal exponent
func (b Bucket) Equal(other Bucket) bool {
	if b.DocCount != other.DocCount {
		return false
	}
	if !boundEqual(b.From, other.From) {
		return false
	}
	return boundEqual(b.To, other.To)
}

func boundEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (b Bucket) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if b.From != nil {
		sb.WriteString(b.From.String())
	} else {
		sb.WriteString("-inf")
	}
	sb.WriteByte(',')
	if b.To != nil {
		sb.WriteString(b.To.String())
	} else {
		sb.WriteString("+inf")
	}
	sb.WriteString(fmt.Sprintf("):%d", b.DocCount))
	return sb.String()
}

// TotalCount sums the document counts of all buckets
func TotalCount(buckets []Bucket) int64 {
	var total int64
	for _, b := range buckets {
		total += b.DocCount
	}
	return total
}
