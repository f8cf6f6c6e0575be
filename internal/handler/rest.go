package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/items-service/internal/model"
	"github.com/vyrodovalexey/items-service/internal/store"
	"github.com/vyrodovalexey/items-service/internal/validate"
)

// Version is the application version.
const Version = "1.0.0"

// AllowedMethods lists every method the /items/ collection supports, in the
// order advertised by the Allow header.
const AllowedMethods = "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS"

// RESTHandler handles the item resource requests.
type RESTHandler struct {
	store  store.Store
	logger *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance.
func NewRESTHandler(s store.Store, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		store:  s,
		logger: logger,
	}
}

// RegisterRoutes registers the item routes with the router. Routes are an
// explicit (verb, path template, handler) table built at startup.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)
	router.HandleFunc("/items/", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/items/", h.OptionsItems).Methods(http.MethodOptions)
	router.HandleFunc("/items/{item_id}", h.ReadItem).Methods(http.MethodGet)
	router.HandleFunc("/items/{item_id}", h.ReplaceItem).Methods(http.MethodPut)
	router.HandleFunc("/items/{item_id}", h.UpdateItem).Methods(http.MethodPatch)
	router.HandleFunc("/items/{item_id}", h.DeleteItem).Methods(http.MethodDelete)
	router.HandleFunc("/items/{item_id}", h.HeadItem).Methods(http.MethodHead)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// ReadyCheck handles GET /ready requests.
func (h *RESTHandler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
}

// ReadItem handles GET /items/{item_id} requests. A missing item is not an
// error: the response carries item null with status 200. Only bad inputs
// fail, with 422.
func (h *RESTHandler) ReadItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, verr := validate.ItemID(mux.Vars(r)["item_id"])
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	q, verr := validate.Query(r.URL.Query())
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	item, err := h.store.Get(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.handleStoreError(w, err, "get item")
		return
	}

	h.writeJSON(w, http.StatusOK, model.ReadItemResponse{
		ItemID: id,
		Item:   item,
		Q:      q,
	})
}

// CreateItem handles POST /items/ requests.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	item, verr := validate.Item(r.Body)
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	id, err := h.store.Create(ctx, item)
	if err != nil {
		h.handleStoreError(w, err, "create item")
		return
	}

	h.writeJSON(w, http.StatusCreated, model.NewItemResponse(id, item))
}

// ReplaceItem handles PUT /items/{item_id} requests. The replace is an
// unconditional upsert: the identifier is created when absent, so PUT never
// reports 404.
func (h *RESTHandler) ReplaceItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, verr := validate.ItemID(mux.Vars(r)["item_id"])
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	item, verr := validate.Item(r.Body)
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	if err := h.store.Put(ctx, id, item); err != nil {
		h.handleStoreError(w, err, "put item")
		return
	}

	h.writeJSON(w, http.StatusOK, model.NewItemResponse(id, item))
}

// UpdateItem handles PATCH /items/{item_id} requests.
func (h *RESTHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, verr := validate.ItemID(mux.Vars(r)["item_id"])
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	update, verr := validate.ItemUpdate(r.Body)
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	merged, err := h.store.Patch(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w)
			return
		}
		h.handleStoreError(w, err, "patch item")
		return
	}

	h.writeJSON(w, http.StatusOK, model.NewItemResponse(id, *merged))
}

// DeleteItem handles DELETE /items/{item_id} requests.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, verr := validate.ItemID(mux.Vars(r)["item_id"])
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w)
			return
		}
		h.handleStoreError(w, err, "delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HeadItem handles HEAD /items/{item_id} requests. Existence is signalled by
// the X-Item-Exists header with status 200; absence by 404.
func (h *RESTHandler) HeadItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, verr := validate.ItemID(mux.Vars(r)["item_id"])
	if verr != nil {
		h.writeValidationError(w, verr)
		return
	}

	exists, err := h.store.Exists(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "item exists")
		return
	}

	if !exists {
		h.notFound(w)
		return
	}

	w.Header().Set("X-Item-Exists", "true")
	w.WriteHeader(http.StatusOK)
}

// OptionsItems handles OPTIONS /items/ requests.
func (h *RESTHandler) OptionsItems(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", AllowedMethods)
	w.WriteHeader(http.StatusNoContent)
}

// notFound writes a 404 with an empty body.
func (h *RESTHandler) notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// handleStoreError handles unexpected store errors.
func (h *RESTHandler) handleStoreError(w http.ResponseWriter, err error, operation string) {
	h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}

// writeValidationError renders a validation failure as a 422 response with
// the full list of field-level complaints.
func (h *RESTHandler) writeValidationError(w http.ResponseWriter, verr *validate.Error) {
	writeValidationError(w, h.logger, verr)
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, h.logger, status, data)
}

// validationMessages maps validation kinds to response messages.
var validationMessages = map[validate.Kind]string{
	validate.KindPathParameter:  "invalid path parameter",
	validate.KindQueryParameter: "invalid query parameter",
	validate.KindBody:           "invalid request body",
}

// writeValidationError is shared by the REST and forms handlers.
func writeValidationError(w http.ResponseWriter, logger *zap.Logger, verr *validate.Error) {
	logger.Warn("validation failed", zap.Error(verr))

	message, ok := validationMessages[verr.Kind]
	if !ok {
		message = "invalid request"
	}

	writeJSON(w, logger, http.StatusUnprocessableEntity, model.ErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Details: verr.Fields,
	})
}

// writeJSON is shared by the REST and forms handlers.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
