package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lojinha/api/internal/domain"
)

func newTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewProductCache(client, time.Minute), mr
}

func TestProductCache_SetGetProduct(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	product := &domain.Product{
		ID:    primitive.NewObjectID(),
		Name:  "P1",
		Price: 10,
	}

	require.NoError(t, c.SetProduct(ctx, product))

	got, err := c.GetProduct(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, "P1", got.Name)
	assert.InDelta(t, 10, got.Price, 0.0001)
}

func TestProductCache_GetProduct_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetProduct(context.Background(), primitive.NewObjectID().Hex())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestProductCache_ProductExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	product := &domain.Product{ID: primitive.NewObjectID(), Name: "P1", Price: 10}
	require.NoError(t, c.SetProduct(ctx, product))

	mr.FastForward(2 * time.Minute)

	_, err := c.GetProduct(ctx, product.ID.Hex())
	assert.ErrorIs(t, err, ErrMiss)
}

func TestProductCache_SetGetList(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	listing := []domain.Product{
		{ID: primitive.NewObjectID(), Name: "P1", Price: 10},
		{ID: primitive.NewObjectID(), Name: "P2", Price: 5.50},
	}

	require.NoError(t, c.SetList(ctx, listing))

	got, err := c.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].Name)
	assert.Equal(t, "P2", got[1].Name)
}

func TestProductCache_InvalidateList(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, []domain.Product{{Name: "P1"}}))
	require.NoError(t, c.InvalidateList(ctx))

	_, err := c.GetList(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}
