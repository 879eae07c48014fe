package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crmd/internal/clock"
	"github.com/smallbiznis/crmd/internal/customer/domain"
	"github.com/smallbiznis/crmd/pkg/db"
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
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Create validates and persists a single customer. Duplicate email and bad
// phone format come back as messages in the result; only storage failures
// are returned as errors. The email check races concurrent writers; the
// unique index on customers.email is the backstop, and a lost race is
// folded back into the duplicate-email message.
func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.CreateCustomerResult, error) {
	var res domain.CreateCustomerResult

	exists, err := s.repo.ExistsByEmail(ctx, s.db, req.Email)
	if err != nil {
		return res, err
	}
	if exists {
		res.Message = "Failed"
		res.Errors = []string{"Email already exists"}
		return res, nil
	}

	if phone := deref(req.Phone); phone != "" && !domain.ValidPhone(phone) {
		res.Message = "Failed"
		res.Errors = []string{"Invalid phone format"}
		return res, nil
	}

	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     normalizePhone(req.Phone),
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			res.Message = "Failed"
			res.Errors = []string{"Email already exists"}
			return res, nil
		}
		return res, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email),
	)

	res.Customer = &customer
	res.Message = "Customer created"
	return res, nil
}

// BulkCreate processes the records inside one transaction. A record that
// fails validation is skipped and reported by position; the batch goes on.
// A storage failure rolls back every record, including ones already
// validated. The duplicate check runs against the transaction, so earlier
// inserts from the same batch are visible to later records.
func (s *Service) BulkCreate(ctx context.Context, req domain.BulkCreateCustomersRequest) (domain.BulkCreateCustomersResult, error) {
	var res domain.BulkCreateCustomersResult
	if len(req.Records) == 0 {
		return res, nil
	}

	created := make([]domain.Customer, 0, len(req.Records))
	var errs []string

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, rec := range req.Records {
			exists, err := s.repo.ExistsByEmail(ctx, tx, rec.Email)
			if err != nil {
				return err
			}
			if exists {
				errs = append(errs, fmt.Sprintf("Record %d: Email %s already exists", idx, rec.Email))
				continue
			}
			if phone := deref(rec.Phone); phone != "" && !domain.ValidPhone(phone) {
				errs = append(errs, fmt.Sprintf("Record %d: Invalid phone %s", idx, phone))
				continue
			}

			customer := domain.Customer{
				ID:        s.genID.Generate(),
				Name:      rec.Name,
				Email:     rec.Email,
				Phone:     normalizePhone(rec.Phone),
				CreatedAt: s.clock.Now().UTC(),
			}
			if err := s.repo.Insert(ctx, tx, &customer); err != nil {
				return err
			}
			created = append(created, customer)
		}
		return nil
	})
	if txErr != nil {
		s.log.Error("bulk customer create rolled back", zap.Error(txErr))
		return domain.BulkCreateCustomersResult{}, txErr
	}

	s.log.Info("bulk customer create",
		zap.Int("requested", len(req.Records)),
		zap.Int("created", len(created)),
		zap.Int("skipped", len(errs)),
	)

	res.Customers = created
	res.Errors = errs
	return res, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomersRequest) (domain.ListCustomersResponse, error) {
	filter := domain.ListCustomerFilter{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		CreatedFrom: req.CreatedFrom,
		CreatedTo:   req.CreatedTo,
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
		return domain.ListCustomersResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(customer *domain.Customer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        customer.ID.String(),
			CreatedAt: customer.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	resp := domain.ListCustomersResponse{Customers: customers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

// normalizePhone treats an empty string the same as an absent phone, so the
// stored column is NULL either way.
func normalizePhone(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
