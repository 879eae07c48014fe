package graphql

import (
	"github.com/graphql-go/graphql"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	orderdomain "github.com/smallbiznis/crmd/internal/order/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
)

// Entity types mirror the persisted models. Field resolvers are explicit
// because the GraphQL names are camelCase while the struct tags are not.

func newCustomerType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return customerSource(p).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return customerSource(p).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return customerSource(p).Email, nil
				},
			},
			"phone": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					phone := customerSource(p).Phone
					if phone == nil {
						return nil, nil
					}
					return *phone, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return customerSource(p).CreatedAt, nil
				},
			},
		},
	})
}

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return productSource(p).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return productSource(p).Name, nil
				},
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return productSource(p).Price.InexactFloat64(), nil
				},
			},
			"stock": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return productSource(p).Stock, nil
				},
			},
		},
	})
}

func newOrderType(customerType, productType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).ID.String(), nil
				},
			},
			"customer": &graphql.Field{
				Type: graphql.NewNonNull(customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).Customer, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).Products, nil
				},
			},
			"orderDate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).OrderDate, nil
				},
			},
			"totalAmount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).TotalAmount.InexactFloat64(), nil
				},
			},
		},
	})
}

func customerSource(p graphql.ResolveParams) customerdomain.Customer {
	switch src := p.Source.(type) {
	case customerdomain.Customer:
		return src
	case *customerdomain.Customer:
		return *src
	default:
		return customerdomain.Customer{}
	}
}

func productSource(p graphql.ResolveParams) productdomain.Product {
	switch src := p.Source.(type) {
	case productdomain.Product:
		return src
	case *productdomain.Product:
		return *src
	default:
		return productdomain.Product{}
	}
}

func orderSource(p graphql.ResolveParams) orderdomain.Order {
	switch src := p.Source.(type) {
	case orderdomain.Order:
		return src
	case *orderdomain.Order:
		return *src
	default:
		return orderdomain.Order{}
	}
}
