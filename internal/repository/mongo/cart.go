package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/lojinha/api/pkg/errors"

	"github.com/lojinha/api/internal/domain"
)

// CartRepository implements repository.CartRepository on a Mongo collection.
type CartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository creates a Mongo-backed cart repository.
func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(collCarts)}
}

// GetByUser retrieves the cart owned by the given user.
func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.coll.FindOne(ctx, bson.M{"usuarioId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

// Insert persists a new cart. The unique usuarioId index guarantees at most
// one cart per user; a duplicate insert surfaces as ErrAlreadyExists so the
// caller can fall back to the update path.
func (r *CartRepository) Insert(ctx context.Context, cart *domain.Cart) error {
	if _, err := r.coll.InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("cart for user %s: %w", cart.UserID, apperrors.ErrAlreadyExists)
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// UpdateByUser replaces the cart document keyed by user, conditional on the
// version read before the mutation. A concurrent writer bumps the version,
// the filter stops matching, and the caller sees false.
func (r *CartRepository) UpdateByUser(ctx context.Context, cart *domain.Cart, expectedVersion int64) (bool, error) {
	filter := bson.M{"usuarioId": cart.UserID, "versao": expectedVersion}
	update := bson.M{"$set": bson.M{
		"itens":           cart.Items,
		"total":           cart.Total,
		"dataAtualizacao": cart.UpdatedAt,
		"versao":          expectedVersion + 1,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("update cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}

	cart.Version = expectedVersion + 1
	return true, nil
}

// List returns every cart in the store, in store order.
func (r *CartRepository) List(ctx context.Context) ([]domain.Cart, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find carts: %w", err)
	}
	defer cursor.Close(ctx)

	carts := []domain.Cart{}
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, fmt.Errorf("decode carts: %w", err)
	}
	return carts, nil
}

// DeleteByUser removes the cart owned by the given user.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"usuarioId": userID})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
