package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/crmd/internal/product/domain"
	"github.com/smallbiznis/crmd/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var dbSeq int64

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:prodsvc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func intptr(i int) *int { return &i }

func TestCreate_DefaultsStockToZero(t *testing.T) {
	svc, db := newTestService(t)

	res, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:  "Mouse",
		Price: decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Product)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 0, res.Product.Stock)
	assert.True(t, res.Product.Price.Equal(decimal.RequireFromString("19.99")))

	var stored domain.Product
	require.NoError(t, db.First(&stored, "id = ?", res.Product.ID).Error)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestCreate_RejectsZeroPrice(t *testing.T) {
	svc, db := newTestService(t)

	res, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:  "Freebie",
		Price: decimal.Zero,
	})
	require.NoError(t, err)

	assert.Nil(t, res.Product)
	assert.Equal(t, []string{"Price must be positive"}, res.Errors)

	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreate_RejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:  "Refund",
		Price: decimal.RequireFromString("-5.00"),
	})
	require.NoError(t, err)

	assert.Nil(t, res.Product)
	assert.Equal(t, []string{"Price must be positive"}, res.Errors)
}

func TestCreate_RejectsNegativeStock(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:  "Laptop",
		Price: decimal.RequireFromString("999.99"),
		Stock: intptr(-1),
	})
	require.NoError(t, err)

	assert.Nil(t, res.Product)
	assert.Equal(t, []string{"Stock cannot be negative"}, res.Errors)
}

func TestCreate_AcceptsExplicitStock(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:  "Laptop",
		Price: decimal.RequireFromString("999.99"),
		Stock: intptr(10),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Product)
	assert.Equal(t, 10, res.Product.Stock)
}

func TestList_FiltersByName(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{"Laptop", "Laptop Stand", "Mouse"} {
		_, err := svc.Create(context.Background(), domain.CreateProductRequest{
			Name:  name,
			Price: decimal.RequireFromString("10.00"),
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), domain.ListProductsRequest{Name: "Laptop"})
	require.NoError(t, err)

	require.Len(t, resp.Products, 2)
	assert.False(t, resp.HasMore)
}

func TestList_PageSizeAndCursor(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), domain.CreateProductRequest{
			Name:  fmt.Sprintf("Widget %d", i),
			Price: decimal.RequireFromString("1.00"),
		})
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), domain.ListProductsRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Products, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(context.Background(), domain.ListProductsRequest{
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.False(t, second.HasMore)
}
