package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
)

type CreateProductRequest struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

type CreateProductResult struct {
	Product *Product `json:"product"`
	Errors  []string `json:"errors"`
}

type ListProductsRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	StockMin  *int
	StockMax  *int
}

type ListProductFilter struct {
	Name     string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	StockMin *int
	StockMax *int
}

type ListProductsResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	Create(context.Context, CreateProductRequest) (CreateProductResult, error)
	List(context.Context, ListProductsRequest) (ListProductsResponse, error)
}
