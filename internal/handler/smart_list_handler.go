package handler

import (
	"net/http"

	"real-preco/internal/model"
	"real-preco/internal/service"

	"github.com/rs/zerolog"
)

// SmartListHandler handles smart shopping list HTTP requests.
type SmartListHandler struct {
	service service.SmartListService
	logger  zerolog.Logger
}

// NewSmartListHandler creates a new smart list handler.
func NewSmartListHandler(service service.SmartListService, logger zerolog.Logger) *SmartListHandler {
	return &SmartListHandler{
		service: service,
		logger:  logger.With().Str("handler", "smart-list").Logger(),
	}
}

// SearchRequest is the body of POST /api/smart-list/search.
type SearchRequest struct {
	Text string `json:"text"`
}

// Get handles GET /api/smart-list requests.
func (h *SmartListHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.State(r.Context()))
}

// Search handles POST /api/smart-list/search requests. Matching failures are
// reported in the result status with HTTP 200 so the shopper can retry.
func (h *SmartListHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	var req SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Search(r.Context(), req.Text)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AddItem handles POST /api/smart-list/items/{id} requests.
func (h *SmartListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	id, err := pathID(r.URL.Path, "/api/smart-list/items/")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, err.Error(), h.logger)
		return
	}

	cart, err := h.service.AddProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddAll handles POST /api/smart-list/add-all requests.
func (h *SmartListHandler) AddAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	result, err := h.service.AddAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Close handles POST /api/smart-list/close requests.
func (h *SmartListHandler) Close(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger)
		return
	}

	h.service.Close(r.Context())
	writeJSON(w, http.StatusOK, h.service.State(r.Context()))
}
