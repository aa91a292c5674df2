package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/lojinha/api/pkg/errors"

	"github.com/lojinha/api/internal/domain"
)

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)

	env.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := env.do(t, http.MethodPost, "/adicionarUsuario", map[string]any{
		"nome":  "Maria",
		"idade": 30,
		"email": "maria@example.com",
		"senha": "segredo123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Maria", body["nome"])
	assert.Equal(t, "maria@example.com", body["email"])

	// The password hash never leaves the service.
	assert.NotContains(t, body, "senha")
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.userRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrAlreadyExists)

	rec := env.do(t, http.MethodPost, "/adicionarUsuario", map[string]any{
		"nome":  "Maria",
		"idade": 30,
		"email": "maria@example.com",
		"senha": "segredo123",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "Email já cadastrado", body.Error)
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/adicionarUsuario", map[string]any{
		"nome":  "Maria",
		"idade": 30,
		"email": "maria@example.com",
		"senha": "abc",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "A senha deve ter no mínimo 6 caracteres", body.Error)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)

	env.userRepo.On("GetByEmail", mock.Anything, "maria@example.com").Return(&domain.User{
		Email:        "maria@example.com",
		PasswordHash: string(hashed),
	}, nil)

	rec := env.do(t, http.MethodPost, "/login", map[string]any{
		"email": "maria@example.com",
		"senha": "segredo123",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.NotEmpty(t, body["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)

	env.userRepo.On("GetByEmail", mock.Anything, "maria@example.com").Return(&domain.User{
		Email:        "maria@example.com",
		PasswordHash: string(hashed),
	}, nil)

	rec := env.do(t, http.MethodPost, "/login", map[string]any{
		"email": "maria@example.com",
		"senha": "errada",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "Não Autorizado!", body.Error)
}

func TestLogin_MissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/login", map[string]any{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "Email e senha são obrigatórios!", body.Error)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)

	env.userRepo.On("List", mock.Anything).Return([]domain.User{
		{Name: "Maria", Email: "maria@example.com"},
	}, nil)

	rec := env.do(t, http.MethodGet, "/usuarios", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[[]map[string]any](t, rec)
	require.Len(t, body, 1)
	assert.NotContains(t, body[0], "senha")
}
