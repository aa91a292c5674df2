package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/lojinha/api/pkg/errors"

	"github.com/lojinha/api/internal/cache"
	"github.com/lojinha/api/internal/domain"
	"github.com/lojinha/api/internal/repository"
)

// CreateProductInput holds the parameters for adding a catalog entry.
type CreateProductInput struct {
	Name        string
	Price       float64
	ImageURL    string
	Description string
}

// ProductService implements the catalog operations, with a Redis read-through
// cache in front of the collection. The cache is optional; a nil cache means
// every read goes to the store.
type ProductService struct {
	repo   repository.ProductRepository
	cache  *cache.ProductCache
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, productCache *cache.ProductCache, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  productCache,
		logger: logger,
	}
}

// GetByID resolves a product by id, serving from cache when possible.
func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, id.Hex())
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.WarnContext(ctx, "product cache read failed",
				slog.String("product_id", id.Hex()),
				slog.String("error", err.Error()),
			)
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			s.logger.WarnContext(ctx, "product cache write failed",
				slog.String("product_id", id.Hex()),
				slog.String("error", err.Error()),
			)
		}
	}

	return product, nil
}

// Create adds a product to the catalog and invalidates the cached listing.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" || input.ImageURL == "" || input.Description == "" {
		return nil, apperrors.InvalidInput("nome, preco, urlfoto e descricao são obrigatórios")
	}
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("preco deve ser maior que zero")
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateList(ctx); err != nil {
			s.logger.WarnContext(ctx, "product list cache invalidation failed",
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.Hex()),
		slog.String("name", product.Name),
	)

	return product, nil
}

// List returns the whole catalog, serving from cache when possible.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetList(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.WarnContext(ctx, "product list cache read failed",
				slog.String("error", err.Error()),
			)
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, products); err != nil {
			s.logger.WarnContext(ctx, "product list cache write failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return products, nil
}
