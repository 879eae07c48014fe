package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/crmd/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name  string
	Email string
	Phone *string
}

// CreateCustomerResult reports either a created customer or the validation
// messages that rejected the request. Storage failures are returned as
// errors, never in Errors.
type CreateCustomerResult struct {
	Customer *Customer `json:"customer"`
	Message  string    `json:"message"`
	Errors   []string  `json:"errors"`
}

type CustomerInput struct {
	Name  string
	Email string
	Phone *string
}

type BulkCreateCustomersRequest struct {
	Records []CustomerInput
}

type BulkCreateCustomersResult struct {
	Customers []Customer `json:"customers"`
	Errors    []string   `json:"errors"`
}

type ListCustomersRequest struct {
	PageToken   string
	PageSize    int32
	Name        string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListCustomerFilter struct {
	Name        string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListCustomersResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (CreateCustomerResult, error)
	BulkCreate(context.Context, BulkCreateCustomersRequest) (BulkCreateCustomersResult, error)
	List(context.Context, ListCustomersRequest) (ListCustomersResponse, error)
}
