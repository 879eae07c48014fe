package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID    snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"type:text;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock int             `gorm:"not null;default:0" json:"stock"`
}

func (Product) TableName() string { return "products" }
