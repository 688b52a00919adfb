package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents one catalog item offered by a seller
type Product struct {
	ID        string          `db:"id"`
	SellerID  uuid.UUID       `db:"seller_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt time.Time       `db:"created_at"`
}
