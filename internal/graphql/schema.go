package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	orderdomain "github.com/smallbiznis/crmd/internal/order/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	"go.uber.org/zap"
)

// Resolver wires the GraphQL schema to the domain services. Validation
// failures come back inside mutation payloads as message lists; a resolver
// returns a Go error only for storage failures, which the executor surfaces
// in the top-level errors array.
type Resolver struct {
	log       *zap.Logger
	customers customerdomain.Service
	products  productdomain.Service
	orders    orderdomain.Service
}

func NewResolver(log *zap.Logger, customers customerdomain.Service, products productdomain.Service, orders orderdomain.Service) *Resolver {
	return &Resolver{
		log:       log.Named("graphql"),
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := newCustomerType()
	productType := newProductType()
	orderType := newOrderType(customerType, productType)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, GraphQL!", nil
				},
			},
			"allCustomers": r.allCustomersField(customerType),
			"allProducts":  r.allProductsField(productType),
			"allOrders":    r.allOrdersField(orderType),
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer":      r.createCustomerField(customerType),
			"bulkCreateCustomers": r.bulkCreateCustomersField(customerType),
			"createProduct":       r.createProductField(productType),
			"createOrder":         r.createOrderField(orderType),
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func (r *Resolver) allCustomersField(customerType *graphql.Object) *graphql.Field {
	listType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CustomerList",
		Fields: graphql.Fields{
			"customers": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(customerType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customerdomain.ListCustomersResponse).Customers, nil
				},
			},
			"nextPageToken": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customerdomain.ListCustomersResponse).NextPageToken, nil
				},
			},
			"hasMore": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customerdomain.ListCustomersResponse).HasMore, nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: listType,
		Args: graphql.FieldConfigArgument{
			"name":        &graphql.ArgumentConfig{Type: graphql.String},
			"email":       &graphql.ArgumentConfig{Type: graphql.String},
			"createdFrom": &graphql.ArgumentConfig{Type: graphql.DateTime},
			"createdTo":   &graphql.ArgumentConfig{Type: graphql.DateTime},
			"pageSize":    &graphql.ArgumentConfig{Type: graphql.Int},
			"pageToken":   &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.customers.List(p.Context, customerdomain.ListCustomersRequest{
				PageToken:   stringArg(p.Args, "pageToken"),
				PageSize:    int32(intArg(p.Args, "pageSize")),
				Name:        stringArg(p.Args, "name"),
				Email:       stringArg(p.Args, "email"),
				CreatedFrom: optTimeArg(p.Args, "createdFrom"),
				CreatedTo:   optTimeArg(p.Args, "createdTo"),
			})
		},
	}
}

func (r *Resolver) allProductsField(productType *graphql.Object) *graphql.Field {
	listType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductList",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(productType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(productdomain.ListProductsResponse).Products, nil
				},
			},
			"nextPageToken": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(productdomain.ListProductsResponse).NextPageToken, nil
				},
			},
			"hasMore": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(productdomain.ListProductsResponse).HasMore, nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: listType,
		Args: graphql.FieldConfigArgument{
			"name":      &graphql.ArgumentConfig{Type: graphql.String},
			"priceMin":  &graphql.ArgumentConfig{Type: graphql.Float},
			"priceMax":  &graphql.ArgumentConfig{Type: graphql.Float},
			"stockMin":  &graphql.ArgumentConfig{Type: graphql.Int},
			"stockMax":  &graphql.ArgumentConfig{Type: graphql.Int},
			"pageSize":  &graphql.ArgumentConfig{Type: graphql.Int},
			"pageToken": &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.products.List(p.Context, productdomain.ListProductsRequest{
				PageToken: stringArg(p.Args, "pageToken"),
				PageSize:  int32(intArg(p.Args, "pageSize")),
				Name:      stringArg(p.Args, "name"),
				PriceMin:  optDecimalArg(p.Args, "priceMin"),
				PriceMax:  optDecimalArg(p.Args, "priceMax"),
				StockMin:  optIntArg(p.Args, "stockMin"),
				StockMax:  optIntArg(p.Args, "stockMax"),
			})
		},
	}
}

func (r *Resolver) allOrdersField(orderType *graphql.Object) *graphql.Field {
	listType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderList",
		Fields: graphql.Fields{
			"orders": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(orderType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(orderdomain.ListOrdersResponse).Orders, nil
				},
			},
			"nextPageToken": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(orderdomain.ListOrdersResponse).NextPageToken, nil
				},
			},
			"hasMore": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(orderdomain.ListOrdersResponse).HasMore, nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: listType,
		Args: graphql.FieldConfigArgument{
			"customerEmail": &graphql.ArgumentConfig{Type: graphql.String},
			"totalMin":      &graphql.ArgumentConfig{Type: graphql.Float},
			"totalMax":      &graphql.ArgumentConfig{Type: graphql.Float},
			"orderedFrom":   &graphql.ArgumentConfig{Type: graphql.DateTime},
			"orderedTo":     &graphql.ArgumentConfig{Type: graphql.DateTime},
			"pageSize":      &graphql.ArgumentConfig{Type: graphql.Int},
			"pageToken":     &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.orders.List(p.Context, orderdomain.ListOrdersRequest{
				PageToken:     stringArg(p.Args, "pageToken"),
				PageSize:      int32(intArg(p.Args, "pageSize")),
				CustomerEmail: stringArg(p.Args, "customerEmail"),
				TotalMin:      optDecimalArg(p.Args, "totalMin"),
				TotalMax:      optDecimalArg(p.Args, "totalMax"),
				OrderedFrom:   optTimeArg(p.Args, "orderedFrom"),
				OrderedTo:     optTimeArg(p.Args, "orderedTo"),
			})
		},
	}
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return 0
}

func optIntArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optStringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optTimeArg(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

func optDecimalArg(args map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := args[key].(float64); ok {
		d := decimal.NewFromFloat(v)
		return &d
	}
	return nil
}

func stringListArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
