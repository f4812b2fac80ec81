package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"devops-backend/internal/item"
	"devops-backend/internal/store"
	"devops-backend/internal/validation"
	"devops-backend/pkg/api"
	appErrors "devops-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler implements the item CRUD endpoints against the store.
type ItemHandler struct {
	store     *store.Store
	validator *validation.Validator
	logger    *zap.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(s *store.Store, v *validation.Validator, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// List handles GET /items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.store.List()

	response := make([]api.ItemResponse, 0, len(items))
	for _, it := range items {
		response = append(response, itemResponse(it))
	}
	api.Success(w, http.StatusOK, response)
}

// Get handles GET /items/{itemID}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.Get(chi.URLParam(r, "itemID"))
	if err != nil {
		h.handleStoreError(w, err)
		return
	}
	api.Success(w, http.StatusOK, itemResponse(it))
}

// Create handles POST /items. The body is validated before the store is touched.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	it := h.store.Create(item.Fields{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	})

	h.logger.Info("item_created",
		zap.String("item_id", it.ID),
		zap.String("name", it.Name),
	)

	api.Success(w, http.StatusCreated, itemResponse(it))
}

// Update handles PUT /items/{itemID} with full-replace semantics.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	it, err := h.store.Update(itemID, item.Fields{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.logger.Info("item_updated", zap.String("item_id", itemID))

	api.Success(w, http.StatusOK, itemResponse(it))
}

// Delete handles DELETE /items/{itemID}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := h.store.Delete(itemID); err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.logger.Info("item_deleted", zap.String("item_id", itemID))

	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate parses the request body and runs field validation.
// Malformed JSON yields 400, a type mismatch or failed field check 422.
func (h *ItemHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*api.ItemRequest, bool) {
	var req api.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			api.ValidationFailed(w, []api.ValidationError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("Must be of type %s", typeErr.Type),
				Code:    "TYPE",
			}})
			return nil, false
		}
		api.Detail(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	if errs := h.validator.Validate(&req); errs != nil {
		api.ValidationFailed(w, errs)
		return nil, false
	}
	return &req, true
}

// handleStoreError maps store errors to transport status codes.
func (h *ItemHandler) handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case appErrors.IsNotFound(err):
		api.Detail(w, http.StatusNotFound, "Item not found")
	case appErrors.IsValidation(err):
		api.Detail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("store operation failed", zap.Error(err))
		api.Detail(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// itemResponse maps the domain entity to its public shape.
func itemResponse(it item.Item) api.ItemResponse {
	return api.ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		CreatedAt:   it.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   it.UpdatedAt.Format(time.RFC3339Nano),
	}
}
