package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	orderdomain "github.com/smallbiznis/crmd/internal/order/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
)

func errorsOrNil(errs []string) interface{} {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r *Resolver) createCustomerField(customerType *graphql.Object) *graphql.Field {
	payloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{
				Type: customerType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer := p.Source.(customerdomain.CreateCustomerResult).Customer
					if customer == nil {
						return nil, nil
					}
					return *customer, nil
				},
			},
			"message": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customerdomain.CreateCustomerResult).Message, nil
				},
			},
			"errors": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return errorsOrNil(p.Source.(customerdomain.CreateCustomerResult).Errors), nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: payloadType,
		Args: graphql.FieldConfigArgument{
			"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.customers.Create(p.Context, customerdomain.CreateCustomerRequest{
				Name:  stringArg(p.Args, "name"),
				Email: stringArg(p.Args, "email"),
				Phone: optStringArg(p.Args, "phone"),
			})
		},
	}
}

func (r *Resolver) bulkCreateCustomersField(customerType *graphql.Object) *graphql.Field {
	inputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	payloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(customerType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customerdomain.BulkCreateCustomersResult).Customers, nil
				},
			},
			"errors": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return errorsOrNil(p.Source.(customerdomain.BulkCreateCustomersResult).Errors), nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: payloadType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(inputType))),
			},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			raw, _ := p.Args["input"].([]interface{})
			records := make([]customerdomain.CustomerInput, 0, len(raw))
			for _, item := range raw {
				fields, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				records = append(records, customerdomain.CustomerInput{
					Name:  stringArg(fields, "name"),
					Email: stringArg(fields, "email"),
					Phone: optStringArg(fields, "phone"),
				})
			}
			return r.customers.BulkCreate(p.Context, customerdomain.BulkCreateCustomersRequest{
				Records: records,
			})
		},
	}
}

func (r *Resolver) createProductField(productType *graphql.Object) *graphql.Field {
	payloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product := p.Source.(productdomain.CreateProductResult).Product
					if product == nil {
						return nil, nil
					}
					return *product, nil
				},
			},
			"errors": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return errorsOrNil(p.Source.(productdomain.CreateProductResult).Errors), nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: payloadType,
		Args: graphql.FieldConfigArgument{
			"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
			"stock": &graphql.ArgumentConfig{Type: graphql.Int},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			price, _ := p.Args["price"].(float64)
			return r.products.Create(p.Context, productdomain.CreateProductRequest{
				Name:  stringArg(p.Args, "name"),
				Price: decimal.NewFromFloat(price),
				Stock: optIntArg(p.Args, "stock"),
			})
		},
	}
}

func (r *Resolver) createOrderField(orderType *graphql.Object) *graphql.Field {
	payloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{
				Type: orderType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					order := p.Source.(orderdomain.CreateOrderResult).Order
					if order == nil {
						return nil, nil
					}
					return *order, nil
				},
			},
			"errors": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return errorsOrNil(p.Source.(orderdomain.CreateOrderResult).Errors), nil
				},
			},
		},
	})

	return &graphql.Field{
		Type: payloadType,
		Args: graphql.FieldConfigArgument{
			"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"productIds": &graphql.ArgumentConfig{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))),
			},
			"orderDate": &graphql.ArgumentConfig{Type: graphql.DateTime},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.orders.Create(p.Context, orderdomain.CreateOrderRequest{
				CustomerID: stringArg(p.Args, "customerId"),
				ProductIDs: stringListArg(p.Args, "productIds"),
				OrderDate:  optTimeArg(p.Args, "orderDate"),
			})
		},
	}
}
