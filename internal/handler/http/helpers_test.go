package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lojinha/api/internal/auth"
	"github.com/lojinha/api/internal/domain"
	"github.com/lojinha/api/internal/service"
)

const (
	testUserID    = "u1"
	testProductID = "123456789012123456789012"
)

type cartRepoMock struct {
	mock.Mock
}

func (m *cartRepoMock) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*domain.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *cartRepoMock) Insert(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *cartRepoMock) UpdateByUser(ctx context.Context, cart *domain.Cart, expectedVersion int64) (bool, error) {
	args := m.Called(ctx, cart, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *cartRepoMock) List(ctx context.Context) ([]domain.Cart, error) {
	args := m.Called(ctx)
	if carts, ok := args.Get(0).([]domain.Cart); ok {
		return carts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *cartRepoMock) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type productRepoMock struct {
	mock.Mock
}

func (m *productRepoMock) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *productRepoMock) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *productRepoMock) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *publisherMock) PublishCartRemoved(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *publisherMock) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// quietPublisher accepts every event; for tests that do not assert publishing.
func quietPublisher() *publisherMock {
	p := &publisherMock{}
	p.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("PublishCartRemoved", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("PublishUserRegistered", mock.Anything, mock.Anything).Return(nil).Maybe()
	return p
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProduct() *domain.Product {
	oid, _ := primitive.ObjectIDFromHex(testProductID)
	return &domain.Product{ID: oid, Name: "P1", Price: 10}
}

type testEnv struct {
	router   http.Handler
	cartRepo *cartRepoMock
	prodRepo *productRepoMock
	userRepo *userRepoMock
}

// newTestEnv wires real services over mocked repositories and mounts the
// handlers on a plain chi router without auth middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cartRepo := &cartRepoMock{}
	prodRepo := &productRepoMock{}
	userRepo := &userRepoMock{}

	logger := testLogger()
	productService := service.NewProductService(prodRepo, nil, logger)
	cartService := service.NewCartService(cartRepo, productService, quietPublisher(), logger)
	userService := service.NewUserService(userRepo, auth.NewJWTManager("test-secret", time.Hour), quietPublisher(), logger)

	cartHandler := NewCartHandler(cartService, logger)
	productHandler := NewProductHandler(productService, logger)
	userHandler := NewUserHandler(userService, logger)

	r := chi.NewRouter()
	r.Post("/adicionarItem", cartHandler.AddItem)
	r.Post("/removerItem", cartHandler.RemoveItem)
	r.Get("/carrinho", cartHandler.List)
	r.Get("/carrinho/{usuarioId}", cartHandler.List)
	r.Delete("/carrinho/{usuarioId}", cartHandler.RemoveCart)
	r.Post("/produtos", productHandler.Create)
	r.Get("/produtos", productHandler.List)
	r.Post("/adicionarUsuario", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/usuarios", userHandler.List)

	return &testEnv{
		router:   r,
		cartRepo: cartRepo,
		prodRepo: prodRepo,
		userRepo: userRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
