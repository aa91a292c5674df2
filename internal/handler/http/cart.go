package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lojinha/api/pkg/httputil"

	"github.com/lojinha/api/internal/service"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// ItemRequest is the JSON request body for adding or removing a cart item.
type ItemRequest struct {
	UserID    string `json:"usuarioId"`
	ProductID string `json:"produtoId"`
	Quantity  int    `json:"quantidade"`
}

// AddItem handles POST /adicionarItem. Responds 201 when a new cart was
// created for the user and 200 when an existing cart was updated.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "corpo da requisição inválido"})
		return
	}

	cart, created, err := h.service.AddItem(r.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, cart)
}

// RemoveItem handles POST /removerItem.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "corpo da requisição inválido"})
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cart)
}

// List handles GET /carrinho and GET /carrinho/{usuarioId}. Without a user id
// (path or query) it returns every cart in the store.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "usuarioId")
	if userID == "" {
		userID = r.URL.Query().Get("usuarioId")
	}

	if userID == "" {
		carts, err := h.service.List(r.Context())
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, carts)
		return
	}

	cart, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cart)
}

// RemoveCart handles DELETE /carrinho/{usuarioId}.
func (h *CartHandler) RemoveCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "usuarioId")

	if err := h.service.RemoveCart(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "Carrinho removido com sucesso"})
}
