package product

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"pricebands/product/options"
	"pricebands/search"
)

// Data store abstraction for querying the product catalog
type Repo interface {
	Create(*Product) error
	FindById(id string) (*Product, error)
	Find(opts ...*options.ProductOptions) ([]*Product, error)
	// PriceHistogram runs the coarse fixed-width range aggregation over
	// product prices that feeds the bucket collapser
	PriceHistogram(interval decimal.Decimal) ([]search.RangeBucket, error)
}

var _ Repo = (*PostgresRepo)(nil)

type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) (*PostgresRepo, error) {
	r := &PostgresRepo{db: db}

	return r, nil
}

func (r *PostgresRepo) Create(product *Product) error {
	_, err := r.db.NamedQuery(
		`INSERT INTO product (seller_id, name, price, created_at) VALUES (:seller_id, :name, :price, :created_at)`,
		product,
	)

	return err
}

func (r *PostgresRepo) FindById(id string) (*Product, error) {
	var result Product
	err := r.db.Get(&result, "SELECT * FROM product WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Executes a Find operation and returns a list of Products
// The `productOptions` can be used to specify options for the operation
func (r *PostgresRepo) Find(productOptions ...*options.ProductOptions) ([]*Product, error) {
	var result []*Product
	// build query
	query := "SELECT * FROM product"

	if len(productOptions) == 0 {
		err := r.db.Select(&result, query)
		if err != nil {
			return nil, err
		}

		return result, nil
	}

	opt := productOptions[0]
	filters := make(map[string]interface{})
	if len(opt.IDs) > 0 {
		filters["id"] = opt.IDs
	}
	if opt.Price != nil {
		filters["price"] = opt.Price
	}

	if opt.Created != nil {
		filters["created_at"] = opt.Created
	}

	var where []string
	var args []interface{}
	namedParams := make(map[string]interface{})

	updateQueryParams := func(stmt, key string, value interface{}) {
		where = append(where, stmt)
		args = append(args, value)
		namedParams[key] = value
	}

	for columnName, arg := range filters {
		switch v := arg.(type) {
		case options.Range:
			var key string

			from, ok := v.From()
			if ok {
				key = columnName + "_from"
				fromStmt := fmt.Sprintf("%s >= :%s", columnName, key)
				updateQueryParams(fromStmt, key, from)
			}
			to, ok := v.To()
			if ok {
				key = columnName + "_to"
				toStmt := fmt.Sprintf("%s <= :%s", columnName, key)
				updateQueryParams(toStmt, key, to)
			}

		default:
			stmt := fmt.Sprintf("%s in (:%s)", columnName, columnName)
			updateQueryParams(stmt, columnName, v)
		}
	}

	if len(where) > 0 {
		query = fmt.Sprintf("%s WHERE %s",
			query,
			strings.Join(where, " AND "),
		)
	}

	query, args, err := sqlx.Named(query, namedParams)
	if err != nil {
		return nil, err
	}
	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)
	err = r.db.Select(&result, query, args...)
	if err != nil {
		return nil, err
	}

	return result, nil
}

type histogramRow struct {
	Lower    decimal.Decimal `db:"lower"`
	DocCount int64           `db:"doc_count"`
}

// PriceHistogram buckets every product price into fixed-width intervals and
// returns the buckets in ascending order, zero-filled so the sequence is
// contiguous. The first bucket is left open below and the last open above,
// marked with infinity sentinels the way the backend reports them.
func (r *PostgresRepo) PriceHistogram(interval decimal.Decimal) ([]search.RangeBucket, error) {
	if !interval.IsPositive() {
		return nil, fmt.Errorf("histogram interval must be positive, got %s", interval)
	}

	var rows []histogramRow
	query := `SELECT floor(price / $1::numeric) * $1::numeric AS lower, count(*) AS doc_count
		FROM product GROUP BY 1 ORDER BY 1`
	err := r.db.Select(&rows, query, interval)
	if err != nil {
		return nil, fmt.Errorf("aggregating prices: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	var buckets []search.RangeBucket
	last := rows[len(rows)-1].Lower
	next := 0
	for lower := rows[0].Lower; !lower.GreaterThan(last); lower = lower.Add(interval) {
		var count int64
		if next < len(rows) && rows[next].Lower.Equal(lower) {
			count = rows[next].DocCount
			next++
		}

		from, _ := lower.Float64()
		to, _ := lower.Add(interval).Float64()
		buckets = append(buckets, search.RangeBucket{
			From:     from,
			To:       to,
			DocCount: count,
		})
	}

	buckets[0].From = math.Inf(-1)
	buckets[len(buckets)-1].To = math.Inf(1)

	return buckets, nil
}
