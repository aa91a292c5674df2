package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lojinha/api/internal/domain"
)

// CartRepository defines the persistence operations for carts.
type CartRepository interface {
	// GetByUser retrieves the cart owned by the given user.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)

	// Insert persists a brand-new cart. The store enforces at most one cart
	// per user; inserting a second one fails with ErrAlreadyExists.
	Insert(ctx context.Context, cart *domain.Cart) error

	// UpdateByUser replaces the cart document for cart.UserID, but only if the
	// stored version still equals expectedVersion. Returns false when another
	// writer got there first.
	UpdateByUser(ctx context.Context, cart *domain.Cart, expectedVersion int64) (bool, error)

	// List returns every cart in the store.
	List(ctx context.Context) ([]domain.Cart, error)

	// DeleteByUser removes the cart owned by the given user.
	DeleteByUser(ctx context.Context, userID string) error
}

// ProductRepository defines the persistence operations for the catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
}

// UserRepository defines the persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
