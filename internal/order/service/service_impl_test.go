package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/crmd/internal/clock"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	customerrepo "github.com/smallbiznis/crmd/internal/customer/repository"
	"github.com/smallbiznis/crmd/internal/order/domain"
	"github.com/smallbiznis/crmd/internal/order/repository"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	productrepo "github.com/smallbiznis/crmd/internal/product/repository"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var dbSeq int64

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:ordersvc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&productdomain.Product{},
		&domain.Order{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.NewFakeClock(fixedNow),
		Repo:      repository.Provide(),
		Customers: customerrepo.Provide(),
		Products:  productrepo.Provide(),
	})
	return svc, db, node
}

func seedCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node, email string) customerdomain.Customer {
	t.Helper()
	customer := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Customer",
		Email:     email,
		CreatedAt: fixedNow,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, name, price string) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:    node.Generate(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&count).Error)
	return count
}

func TestCreate_PersistsOrderWithDerivedTotal(t *testing.T) {
	svc, db, node := newTestService(t)

	customer := seedCustomer(t, db, node, "alice@example.com")
	laptop := seedProduct(t, db, node, "Laptop", "999.99")
	mouse := seedProduct(t, db, node, "Mouse", "19.99")

	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: customer.ID.String(),
		ProductIDs: []string{laptop.ID.String(), mouse.ID.String()},
	})
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	assert.Empty(t, res.Errors)
	want := decimal.RequireFromString("1019.98")
	assert.True(t, res.Order.TotalAmount.Equal(want), "got %s", res.Order.TotalAmount)
	assert.Equal(t, fixedNow, res.Order.OrderDate)
	assert.Equal(t, customer.ID, res.Order.CustomerID)

	// Stored total must match the association-derived sum.
	var stored domain.Order
	require.NoError(t, db.Preload("Products").First(&stored, "id = ?", res.Order.ID).Error)
	assert.True(t, stored.TotalAmount.Equal(want), "got %s", stored.TotalAmount)
	assert.Len(t, stored.Products, 2)
}

func TestCreate_HonorsExplicitOrderDate(t *testing.T) {
	svc, db, node := newTestService(t)

	customer := seedCustomer(t, db, node, "bob@example.com")
	product := seedProduct(t, db, node, "Mouse", "19.99")

	orderDate := time.Date(2023, 12, 24, 18, 30, 0, 0, time.UTC)
	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: customer.ID.String(),
		ProductIDs: []string{product.ID.String()},
		OrderDate:  &orderDate,
	})
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	assert.Equal(t, orderDate, res.Order.OrderDate)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	svc, db, node := newTestService(t)
	product := seedProduct(t, db, node, "Mouse", "19.99")

	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: node.Generate().String(),
		ProductIDs: []string{product.ID.String()},
	})
	require.NoError(t, err)

	assert.Nil(t, res.Order)
	assert.Equal(t, []string{"Invalid customer ID"}, res.Errors)
	assert.EqualValues(t, 0, orderCount(t, db))
}

func TestCreate_UnparsableCustomerID(t *testing.T) {
	svc, db, node := newTestService(t)
	product := seedProduct(t, db, node, "Mouse", "19.99")

	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: "not-a-number",
		ProductIDs: []string{product.ID.String()},
	})
	require.NoError(t, err)

	assert.Nil(t, res.Order)
	assert.Equal(t, []string{"Invalid customer ID"}, res.Errors)
}

func TestCreate_ReportsEveryBadProductID(t *testing.T) {
	svc, db, node := newTestService(t)

	customer := seedCustomer(t, db, node, "alice@example.com")
	valid := seedProduct(t, db, node, "Laptop", "999.99")
	missingA := node.Generate().String()
	missingB := node.Generate().String()

	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: customer.ID.String(),
		ProductIDs: []string{valid.ID.String(), missingA, missingB},
	})
	require.NoError(t, err)

	assert.Nil(t, res.Order)
	assert.Equal(t, []string{
		"Invalid product ID: " + missingA,
		"Invalid product ID: " + missingB,
	}, res.Errors)
	assert.EqualValues(t, 0, orderCount(t, db))
}

// failingLookupRepos verify that an empty product list is rejected before
// any store access.
type failingCustomerRepo struct{ t *testing.T }

func (r *failingCustomerRepo) Insert(context.Context, *gorm.DB, *customerdomain.Customer) error {
	r.t.Fatal("unexpected customer insert")
	return nil
}

func (r *failingCustomerRepo) ExistsByEmail(context.Context, *gorm.DB, string) (bool, error) {
	r.t.Fatal("unexpected customer lookup")
	return false, nil
}

func (r *failingCustomerRepo) FindByID(context.Context, *gorm.DB, snowflake.ID) (*customerdomain.Customer, error) {
	r.t.Fatal("unexpected customer lookup")
	return nil, nil
}

func (r *failingCustomerRepo) List(context.Context, *gorm.DB, customerdomain.ListCustomerFilter, pagination.Pagination) ([]*customerdomain.Customer, error) {
	r.t.Fatal("unexpected customer list")
	return nil, nil
}

func TestCreate_EmptyProductListShortCircuits(t *testing.T) {
	_, db, node := newTestService(t)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.NewFakeClock(fixedNow),
		Repo:      repository.Provide(),
		Customers: &failingCustomerRepo{t: t},
		Products:  productrepo.Provide(),
	})

	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: node.Generate().String(),
		ProductIDs: nil,
	})
	require.NoError(t, err)

	assert.Nil(t, res.Order)
	assert.Equal(t, []string{"At least one product must be selected"}, res.Errors)
}

// failTotalRepo delegates to the real repository but fails the final total
// write, simulating a storage failure after the order and its product rows
// were already written inside the transaction.
type failTotalRepo struct {
	domain.Repository
}

func (r *failTotalRepo) UpdateTotal(context.Context, *gorm.DB, *domain.Order, decimal.Decimal) error {
	return errors.New("constraint violation")
}

func TestCreate_StorageFailureRollsBackOrderAndProducts(t *testing.T) {
	_, db, node := newTestService(t)

	customer := seedCustomer(t, db, node, "alice@example.com")
	laptop := seedProduct(t, db, node, "Laptop", "999.99")
	mouse := seedProduct(t, db, node, "Mouse", "19.99")

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.NewFakeClock(fixedNow),
		Repo:      &failTotalRepo{Repository: repository.Provide()},
		Customers: customerrepo.Provide(),
		Products:  productrepo.Provide(),
	})

	res, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: customer.ID.String(),
		ProductIDs: []string{laptop.ID.String(), mouse.ID.String()},
	})

	require.Error(t, err)
	assert.Nil(t, res.Order)
	assert.EqualValues(t, 0, orderCount(t, db))

	// The join rows written by AttachProducts must be gone too.
	var joinRows int64
	require.NoError(t, db.Table("order_products").Count(&joinRows).Error)
	assert.EqualValues(t, 0, joinRows)
}

func TestList_FiltersByCustomerEmail(t *testing.T) {
	svc, db, node := newTestService(t)

	alice := seedCustomer(t, db, node, "alice@example.com")
	bob := seedCustomer(t, db, node, "bob@example.com")
	product := seedProduct(t, db, node, "Mouse", "19.99")

	for _, c := range []customerdomain.Customer{alice, alice, bob} {
		_, err := svc.Create(context.Background(), domain.CreateOrderRequest{
			CustomerID: c.ID.String(),
			ProductIDs: []string{product.ID.String()},
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), domain.ListOrdersRequest{
		CustomerEmail: "alice@example.com",
	})
	require.NoError(t, err)

	require.Len(t, resp.Orders, 2)
	for _, o := range resp.Orders {
		assert.Equal(t, "alice@example.com", o.Customer.Email)
		require.Len(t, o.Products, 1)
		assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("19.99")))
	}
}
