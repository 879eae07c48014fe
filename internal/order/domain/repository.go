package domain

import (
	"context"

	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	// Insert writes the order row only; associations are attached
	// separately once the order has a persisted identity.
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	AttachProducts(ctx context.Context, db *gorm.DB, order *Order, products []productdomain.Product) error
	UpdateTotal(ctx context.Context, db *gorm.DB, order *Order, total decimal.Decimal) error
	List(ctx context.Context, db *gorm.DB, filter ListOrderFilter, page pagination.Pagination) ([]*Order, error)
}
