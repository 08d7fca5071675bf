package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"real-preco/internal/model"
	"real-preco/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles cart, navigation and checkout HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID int `json:"productId"`
}

// UpdateQuantityRequest is the body of PUT /api/cart/items/{id}. Quantity holds
// the raw user input and may be a JSON string or number.
type UpdateQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// NavigationRequest is the optional body of POST /api/navigation/{event}.
type NavigationRequest struct {
	Category string `json:"category"`
}

// GetCart handles GET /api/cart requests.
func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.Cart(r.Context()))
}

// AddItem handles POST /api/cart/items requests.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// UpdateItem handles PUT /api/cart/items/{id} requests.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	id, err := pathID(r.URL.Path, "/api/cart/items/")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, err.Error(), h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), id, quantityInput(req.Quantity))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	id, err := pathID(r.URL.Path, "/api/cart/items/")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.RemoveItem(r.Context(), id))
}

// GetNavigation handles GET /api/navigation requests.
func (h *OrderHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.Navigation(r.Context()))
}

// Navigate handles POST /api/navigation/{event} requests.
func (h *OrderHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	event := pathSegment(r.URL.Path, "/api/navigation/")
	if event == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "navigation event is required", h.logger)
		return
	}

	// The body is optional; only select-category needs it.
	var req NavigationRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	state, err := h.service.Navigate(r.Context(), service.NavigationEvent(event), req.Category)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// SubmitDelivery handles POST /api/checkout/delivery requests.
func (h *OrderHandler) SubmitDelivery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	var details model.DeliveryDetails
	if err := decodeJSON(r, &details); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	instructions, err := h.service.SubmitDelivery(r.Context(), details)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, instructions)
}

// Payment handles GET /api/checkout/payment requests.
func (h *OrderHandler) Payment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	instructions, err := h.service.PaymentInstructions(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, instructions)
}

// ConfirmPayment handles POST /api/checkout/confirm requests.
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	receipt, err := h.service.ConfirmPayment(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

// quantityInput turns the raw quantity field back into the text the shopper
// typed. Numbers keep their literal form so "2.5" stays fractional.
func quantityInput(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.TrimSpace(string(raw))
}
