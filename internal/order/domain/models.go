package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
)

type Order struct {
	ID          snowflake.ID            `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID            `gorm:"not null;index" json:"customer_id"`
	Customer    customerdomain.Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer"`
	Products    []productdomain.Product `gorm:"many2many:order_products" json:"products"`
	OrderDate   time.Time               `gorm:"not null" json:"order_date"`
	TotalAmount decimal.Decimal         `gorm:"type:numeric(12,2);not null" json:"total_amount"`
}

func (Order) TableName() string { return "orders" }

// CalculateTotal sums the prices of the currently associated products with
// exact decimal arithmetic, assigns the sum to TotalAmount and returns it.
// An order with no products totals zero. The caller is responsible for
// persisting the new value.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	o.TotalAmount = total
	return total
}
