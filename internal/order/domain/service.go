package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
)

type CreateOrderRequest struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

type CreateOrderResult struct {
	Order  *Order   `json:"order"`
	Errors []string `json:"errors"`
}

type ListOrdersRequest struct {
	PageToken     string
	PageSize      int32
	CustomerEmail string
	TotalMin      *decimal.Decimal
	TotalMax      *decimal.Decimal
	OrderedFrom   *time.Time
	OrderedTo     *time.Time
}

type ListOrderFilter struct {
	CustomerEmail string
	TotalMin      *decimal.Decimal
	TotalMax      *decimal.Decimal
	OrderedFrom   *time.Time
	OrderedTo     *time.Time
}

type ListOrdersResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}

type Service interface {
	Create(context.Context, CreateOrderRequest) (CreateOrderResult, error)
	List(context.Context, ListOrdersRequest) (ListOrdersResponse, error)
}
