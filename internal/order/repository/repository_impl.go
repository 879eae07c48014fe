package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/crmd/internal/order/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).
		Omit(clause.Associations).
		Create(order).Error
}

func (r *repo) AttachProducts(ctx context.Context, db *gorm.DB, order *domain.Order, products []productdomain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(order).
		Omit("Products.*").
		Association("Products").
		Append(&products)
}

func (r *repo) UpdateTotal(ctx context.Context, db *gorm.DB, order *domain.Order, total decimal.Decimal) error {
	return db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", order.ID).
		Update("total_amount", total).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListOrderFilter, page pagination.Pagination) ([]*domain.Order, error) {
	var orders []*domain.Order
	stmt := db.WithContext(ctx).
		Model(&domain.Order{}).
		Preload("Customer").
		Preload("Products")
	if filter.CustomerEmail != "" {
		stmt = stmt.
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.email = ?", filter.CustomerEmail)
	}
	if filter.TotalMin != nil {
		stmt = stmt.Where("orders.total_amount >= ?", *filter.TotalMin)
	}
	if filter.TotalMax != nil {
		stmt = stmt.Where("orders.total_amount <= ?", *filter.TotalMax)
	}
	if filter.OrderedFrom != nil {
		stmt = stmt.Where("orders.order_date >= ?", *filter.OrderedFrom)
	}
	if filter.OrderedTo != nil {
		stmt = stmt.Where("orders.order_date <= ?", *filter.OrderedTo)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("orders.id < ?", cursor.ID)
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}
	err := stmt.
		Order("orders.id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
