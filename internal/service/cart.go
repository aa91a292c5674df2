package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/lojinha/api/pkg/errors"

	"github.com/lojinha/api/internal/domain"
	"github.com/lojinha/api/internal/repository"
)

// maxWriteRetries bounds how many times a cart mutation is retried after
// losing an optimistic-concurrency race.
const maxWriteRetries = 3

// ProductFinder is the narrow catalog view the cart needs: resolve a product
// id to its current name and price.
type ProductFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
}

// CartEventPublisher publishes cart lifecycle events.
type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartRemoved(ctx context.Context, userID string) error
}

// CartService implements the cart aggregation logic: find-or-create cart,
// item merge, and total recomputation.
type CartService struct {
	carts    repository.CartRepository
	products ProductFinder
	producer CartEventPublisher
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products ProductFinder, producer CartEventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// AddItem adds quantity units of a product to the user's cart, creating the
// cart on first add. Adding a product already in the cart increments its
// quantity in place; the item keeps the price and name snapshotted at first
// add. The returned flag is true when a new cart document was created.
//
// Validation happens before any storage I/O, and the product lookup happens
// before any cart I/O, so a rejected call never touches the cart collection.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, bool, error) {
	if userID == "" || productID == "" || quantity == 0 {
		return nil, false, apperrors.InvalidInput("usuarioId, produtoId e quantidade são obrigatórios")
	}
	if quantity < 0 {
		return nil, false, apperrors.InvalidInput("quantidade deve ser maior que zero")
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, false, apperrors.InvalidInput("produtoId inválido")
	}

	product, err := s.products.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.NotFound("Produto não encontrado")
		}
		return nil, false, fmt.Errorf("get product: %w", err)
	}

	// Read-modify-write under optimistic concurrency: the update is
	// conditional on the version read, and a lost race re-reads and retries.
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("get cart: %w", err)
		}

		now := time.Now().UTC()

		if cart == nil {
			cart = &domain.Cart{
				UserID: userID,
				Items: []domain.CartItem{{
					ProductID: productID,
					Quantity:  quantity,
					UnitPrice: product.Price,
					Name:      product.Name,
				}},
				UpdatedAt: now,
				Version:   0,
			}
			cart.Total = cart.ComputeTotal()

			if err := s.carts.Insert(ctx, cart); err != nil {
				if errors.Is(err, apperrors.ErrAlreadyExists) {
					// Another request created the cart first; merge into it.
					continue
				}
				return nil, false, fmt.Errorf("insert cart: %w", err)
			}

			s.publishCartUpdated(ctx, cart)
			s.logger.InfoContext(ctx, "cart created",
				slog.String("user_id", userID),
				slog.String("product_id", productID),
				slog.Int("quantity", quantity),
			)
			return cart, true, nil
		}

		expectedVersion := cart.Version

		if idx := cart.FindItemIndex(productID); idx >= 0 {
			// Quantity merges in place; the snapshot price and name stay.
			cart.Items[idx].Quantity += quantity
		} else {
			cart.Items = append(cart.Items, domain.CartItem{
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
				Name:      product.Name,
			})
		}

		cart.Total = cart.ComputeTotal()
		cart.UpdatedAt = now

		ok, err := s.carts.UpdateByUser(ctx, cart, expectedVersion)
		if err != nil {
			return nil, false, fmt.Errorf("update cart: %w", err)
		}
		if !ok {
			continue
		}

		s.publishCartUpdated(ctx, cart)
		s.logger.InfoContext(ctx, "item added to cart",
			slog.String("user_id", userID),
			slog.String("product_id", productID),
			slog.Int("quantity", quantity),
		)
		return cart, false, nil
	}

	return nil, false, apperrors.Conflict("carrinho modificado concorrentemente, tente novamente")
}

// Get returns the cart for a single user, or NotFound if none exists.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("usuarioId é obrigatório")
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Carrinho não encontrado")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// List returns every cart in the store, unfiltered.
func (s *CartService) List(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.carts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	return carts, nil
}

// RemoveItem subtracts quantity units of a product from the user's cart.
// An item whose quantity would drop to zero or below is removed outright,
// and removing the last item deletes the cart document itself, so no item
// with a non-positive quantity ever persists.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if userID == "" || productID == "" || quantity == 0 {
		return nil, apperrors.InvalidInput("usuarioId, produtoId e quantidade são obrigatórios")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantidade deve ser maior que zero")
	}

	if _, err := primitive.ObjectIDFromHex(productID); err != nil {
		return nil, apperrors.InvalidInput("produtoId inválido")
	}

	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("Carrinho não encontrado")
			}
			return nil, fmt.Errorf("get cart: %w", err)
		}

		idx := cart.FindItemIndex(productID)
		if idx < 0 {
			return nil, apperrors.NotFound("Item não encontrado no carrinho")
		}

		expectedVersion := cart.Version

		cart.Items[idx].Quantity -= quantity
		if cart.Items[idx].Quantity <= 0 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		}

		if len(cart.Items) == 0 {
			if err := s.carts.DeleteByUser(ctx, userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("delete cart: %w", err)
			}
			cart.Total = 0
			cart.UpdatedAt = time.Now().UTC()

			s.publishCartRemoved(ctx, userID)
			s.logger.InfoContext(ctx, "cart emptied and removed",
				slog.String("user_id", userID),
				slog.String("product_id", productID),
			)
			return cart, nil
		}

		cart.Total = cart.ComputeTotal()
		cart.UpdatedAt = time.Now().UTC()

		ok, err := s.carts.UpdateByUser(ctx, cart, expectedVersion)
		if err != nil {
			return nil, fmt.Errorf("update cart: %w", err)
		}
		if !ok {
			continue
		}

		s.publishCartUpdated(ctx, cart)
		s.logger.InfoContext(ctx, "item removed from cart",
			slog.String("user_id", userID),
			slog.String("product_id", productID),
			slog.Int("quantity", quantity),
		)
		return cart, nil
	}

	return nil, apperrors.Conflict("carrinho modificado concorrentemente, tente novamente")
}

// RemoveCart deletes the user's entire cart document.
func (s *CartService) RemoveCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("usuarioId é obrigatório")
	}

	if err := s.carts.DeleteByUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("Carrinho não encontrado")
		}
		return fmt.Errorf("delete cart: %w", err)
	}

	s.publishCartRemoved(ctx, userID)
	s.logger.InfoContext(ctx, "cart removed",
		slog.String("user_id", userID),
	)
	return nil
}

// publishCartUpdated emits the update event; publish failures are logged and
// never fail the request.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish carrinho.atualizado event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) publishCartRemoved(ctx context.Context, userID string) {
	if err := s.producer.PublishCartRemoved(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish carrinho.removido event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
