package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	"gorm.io/gorm"
)

type demoCustomer struct {
	name  string
	email string
	phone string
}

type demoProduct struct {
	name  string
	price string
	stock int
}

var (
	demoCustomers = []demoCustomer{
		{name: "Alice", email: "alice@example.com", phone: "+1234567890"},
		{name: "Bob", email: "bob@example.com", phone: "123-456-7890"},
	}
	demoProducts = []demoProduct{
		{name: "Laptop", price: "999.99", stock: 10},
		{name: "Mouse", price: "19.99", stock: 100},
	}
)

// EnsureDemoData seeds a couple of customers and products for local
// development. Safe to run repeatedly; existing rows are kept.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range demoCustomers {
			var count int64
			if err := tx.Model(&customerdomain.Customer{}).
				Where("email = ?", c.email).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			phone := c.phone
			if err := tx.Create(&customerdomain.Customer{
				ID:    node.Generate(),
				Name:  c.name,
				Email: c.email,
				Phone: &phone,
			}).Error; err != nil {
				return err
			}
		}

		for _, p := range demoProducts {
			var count int64
			if err := tx.Model(&productdomain.Product{}).
				Where("name = ?", p.name).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return err
			}
			if err := tx.Create(&productdomain.Product{
				ID:    node.Generate(),
				Name:  p.name,
				Price: price,
				Stock: p.stock,
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
