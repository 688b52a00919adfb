package product

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"pricebands/product/options"
	"pricebands/product/postgres"
)

func TestProductRepo(t *testing.T) {
	s := NewSuite(t)
	suite.Run(t, s)
}

func NewSuite(t *testing.T) *Suite {
	return &Suite{
		Assertions: require.New(t),
	}
}

type Suite struct {
	suite.Suite
	*require.Assertions // default to require behavior
	repo                Repo
	db                  *sqlx.DB
	products            []*Product
}

func (s *Suite) SetupSuite() {
	// load environment
	err := godotenv.Load("../.env")
	s.NoError(err)

	config, err := postgres.Parse()
	s.NoError(err)

	db, err := postgres.Connect(config)
	s.NoError(err)
	s.db = db

	repo, err := NewPostgresRepo(db)
	s.NoError(err)

	s.repo = repo
}

func (s *Suite) SetupTest() {
	s.teardown()
	s.createProducts(10)
}

func (s *Suite) teardown() {
	s.db.MustExec("DELETE FROM product")
}

// createProducts inserts {length} products priced 100, 200, 300, ...
func (s *Suite) createProducts(length int) {
	var rows []*Product
	for i := 1; i <= length; i++ {
		rows = append(rows,
			&Product{
				SellerID: uuid.New(),
				Name:     fmt.Sprintf("item-%d", i),
				Price:    decimal.NewFromInt32(int32(i * 100)),
			},
		)
	}

	query := "INSERT INTO product (seller_id, name, price) VALUES (:seller_id, :name, :price)"
	_, err := s.db.NamedExec(query, rows)
	s.NoError(err)

	s.refreshInMem()
}

func (s *Suite) TeardownSuite() {
	s.NoError(s.db.Close())
}

func (s *Suite) TestFindById() {
	want := s.products[1]
	got, err := s.repo.FindById(want.ID)
	s.NoError(err)

	s.Equal(want, got)
}

func (s *Suite) TestFindAll() {
	got, err := s.repo.Find()
	s.NoError(err)

	s.Equal(got, s.products)
}

func (s *Suite) TestFindByIds() {
	var ids []string
	num := 2

	for i := 0; i < num; i++ {
		ids = append(ids, s.products[i].ID)
	}

	opts := options.NewProductOptions()
	opts.SetIDs(ids...)

	products, err := s.repo.Find(opts)
	s.NoError(err)

	s.Equal(s.products[:num], products)
}

func (s *Suite) TestFindByPriceRange() {
	cases := []struct {
		From int
		To   int
	}{
		{200, 800},
		{0, 300},
		{400, math.MaxInt32},
	}
	for _, tc := range cases {
		from := decimal.NewFromInt32(int32(tc.From))
		to := decimal.NewFromInt32(int32(tc.To))

		priceRange := &options.DecimalRange{
			Low:  &from,
			High: &to,
		}

		opts := options.NewProductOptions()
		opts.SetPriceRange(priceRange)
		got, err := s.repo.Find(opts)
		s.NoError(err)

		var want []*Product
		for _, each := range s.products {
			if !from.IsZero() && each.Price.LessThan(from) {
				continue
			}
			if !to.IsZero() && each.Price.GreaterThan(to) {
				continue
			}

			want = append(want, each)
		}

		s.Equal(want, got, "values should range from %s to %s", from.String(), to.String())
	}
}

func (s *Suite) TestPriceHistogram() {
	// prices 100..1000 with interval 250 land in five occupied slots
	buckets, err := s.repo.PriceHistogram(decimal.NewFromInt(250))
	s.NoError(err)

	s.Len(buckets, 5)

	wantCounts := []int64{2, 2, 3, 2, 1}
	for i, b := range buckets {
		s.Equal(wantCounts[i], b.DocCount, "bucket %d", i)
	}

	// open-ended outer buckets, contiguous inner bounds
	s.True(math.IsInf(buckets[0].From, -1))
	s.True(math.IsInf(buckets[len(buckets)-1].To, 1))
	for i := 1; i < len(buckets); i++ {
		s.Equal(buckets[i-1].To, buckets[i].From, "buckets %d and %d", i-1, i)
	}
}

func (s *Suite) TestPriceHistogramZeroFill() {
	s.teardown()
	s.db.MustExec(
		"INSERT INTO product (seller_id, name, price) VALUES ($1, $2, $3), ($4, $5, $6)",
		uuid.New(), "cheap", "15", uuid.New(), "dear", "450",
	)

	buckets, err := s.repo.PriceHistogram(decimal.NewFromInt(100))
	s.NoError(err)

	// slots 0 and 400 are occupied, 100 through 300 are zero-filled
	s.Len(buckets, 5)
	s.EqualValues(1, buckets[0].DocCount)
	s.EqualValues(0, buckets[1].DocCount)
	s.EqualValues(0, buckets[2].DocCount)
	s.EqualValues(0, buckets[3].DocCount)
	s.EqualValues(1, buckets[4].DocCount)
}

func (s *Suite) TestPriceHistogramEmptyCatalog() {
	s.teardown()

	buckets, err := s.repo.PriceHistogram(decimal.NewFromInt(100))
	s.NoError(err)
	s.Empty(buckets)
}

func (s *Suite) TestPriceHistogramBadInterval() {
	_, err := s.repo.PriceHistogram(decimal.Zero)
	s.Error(err)
}

func (s *Suite) refreshInMem() {
	query := "SELECT * FROM product"
	s.products = s.products[:0] // clear our in-memory products
	err := s.db.Select(&s.products, query)
	s.NoError(err)
}
