package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crmd/internal/clock"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	"github.com/smallbiznis/crmd/internal/order/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	"github.com/smallbiznis/crmd/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Customers customerdomain.Repository
	Products  productdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	customers customerdomain.Repository
	products  productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		customers: p.Customers,
		products:  p.Products,
	}
}

// Create validates the customer and product references, then persists the
// order, its product associations and the derived total in one transaction,
// so a half-written order is never observable. Every unresolved product id
// is reported, not just the first; an empty product list is rejected before
// any lookup.
func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResult, error) {
	var res domain.CreateOrderResult

	if len(req.ProductIDs) == 0 {
		res.Errors = []string{"At least one product must be selected"}
		return res, nil
	}

	customer, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return res, err
	}
	if customer == nil {
		res.Errors = []string{"Invalid customer ID"}
		return res, nil
	}

	var (
		products []productdomain.Product
		errs     []string
	)
	for _, raw := range req.ProductIDs {
		id, parseErr := snowflake.ParseString(strings.TrimSpace(raw))
		if parseErr != nil {
			errs = append(errs, fmt.Sprintf("Invalid product ID: %s", raw))
			continue
		}
		product, err := s.products.FindByID(ctx, s.db, id)
		if err != nil {
			return res, err
		}
		if product == nil {
			errs = append(errs, fmt.Sprintf("Invalid product ID: %s", raw))
			continue
		}
		products = append(products, *product)
	}
	if len(errs) > 0 {
		res.Errors = errs
		return res, nil
	}

	orderDate := s.clock.Now().UTC()
	if req.OrderDate != nil {
		orderDate = req.OrderDate.UTC()
	}

	order := domain.Order{
		ID:         s.genID.Generate(),
		CustomerID: customer.ID,
		OrderDate:  orderDate,
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		if err := s.repo.AttachProducts(ctx, tx, &order, products); err != nil {
			return err
		}
		order.Products = products
		total := order.CalculateTotal()
		return s.repo.UpdateTotal(ctx, tx, &order, total)
	})
	if txErr != nil {
		return res, txErr
	}

	order.Customer = *customer

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.Int("products", len(products)),
		zap.String("total_amount", order.TotalAmount.String()),
	)

	res.Order = &order
	return res, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrdersRequest) (domain.ListOrdersResponse, error) {
	filter := domain.ListOrderFilter{
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		TotalMin:      req.TotalMin,
		TotalMax:      req.TotalMax,
		OrderedFrom:   req.OrderedFrom,
		OrderedTo:     req.OrderedTo,
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
		return domain.ListOrdersResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(order *domain.Order) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: order.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	resp := domain.ListOrdersResponse{Orders: orders}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) resolveCustomer(ctx context.Context, raw string) (*customerdomain.Customer, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil
	}
	return s.customers.FindByID(ctx, s.db, id)
}
