package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crmd/internal/product/domain"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Create validates price and stock before writing. Stock defaults to zero
// when omitted.
func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.CreateProductResult, error) {
	var res domain.CreateProductResult

	if !req.Price.IsPositive() {
		res.Errors = []string{"Price must be positive"}
		return res, nil
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		res.Errors = []string{"Stock cannot be negative"}
		return res, nil
	}

	product := domain.Product{
		ID:    s.genID.Generate(),
		Name:  req.Name,
		Price: req.Price,
		Stock: stock,
	}
	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return res, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("price", product.Price.String()),
	)

	res.Product = &product
	return res, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductsRequest) (domain.ListProductsResponse, error) {
	filter := domain.ListProductFilter{
		Name:     strings.TrimSpace(req.Name),
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		StockMin: req.StockMin,
		StockMax: req.StockMax,
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListProductsResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(product *domain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: product.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}

	resp := domain.ListProductsResponse{Products: products}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}
