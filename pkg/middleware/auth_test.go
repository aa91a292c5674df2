package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestServer(validate TokenValidator) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"usuarioId": UserIDFromContext(r.Context()),
		})
	})
	return Auth(validate)(next)
}

func TestAuth_ValidToken(t *testing.T) {
	handler := authTestServer(func(token string) (*Claims, error) {
		require.Equal(t, "bom-token", token)
		return &Claims{UserID: "u1"}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bom-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["usuarioId"])
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := authTestServer(func(string) (*Claims, error) {
		t.Fatal("validator must not be called")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Você não passou o token no Bearer", body["error"])
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := authTestServer(func(string) (*Claims, error) {
		t.Fatal("validator must not be called")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Você não passou o token no Bearer", body["error"])
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := authTestServer(func(string) (*Claims, error) {
		return nil, errors.New("expired")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer mau-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Token Inválido", body["error"])
}
