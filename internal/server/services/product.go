package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/products"
)

// ProductService exposes the product catalog CRUD operations.
type ProductService struct {
	repo         products.Repository
	logger       logging.Logger
	storeTimeout time.Duration
}

func NewProductService(repo products.Repository, logger logging.Logger, cfg *config.Config) *ProductService {
	return &ProductService{
		repo:         repo,
		logger:       logger.With("module", "product_service"),
		storeTimeout: cfg.StoreTimeout,
	}
}

func (s *ProductService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// classify maps repository failures to service errors, passing through
// common.ErrorNotFound.
func (s *ProductService) classify(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, op, "err", err)
	return common.ErrorStoreUnavailable
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	created, err := s.repo.Create(cctx, product)
	if err != nil {
		return nil, s.classify(ctx, "creating product", err)
	}
	return created, nil
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	list, err := s.repo.List(cctx)
	if err != nil {
		return nil, s.classify(ctx, "listing products", err)
	}
	return list, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	product, err := s.repo.GetByID(cctx, id)
	if err != nil {
		return nil, s.classify(ctx, "getting product", err)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	updated, err := s.repo.Update(cctx, product)
	if err != nil {
		return nil, s.classify(ctx, "updating product", err)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.repo.Delete(cctx, id); err != nil {
		return s.classify(ctx, "deleting product", err)
	}
	return nil
}
