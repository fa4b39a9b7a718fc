// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	perrors "github.com/SamuGasto/productos-api/internal/errors"
	"github.com/SamuGasto/productos-api/internal/product"
	"github.com/SamuGasto/productos-api/internal/service"
	"github.com/SamuGasto/productos-api/pkg/web"
	"github.com/go-chi/chi/v5"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "productos-api"

const welcomeMessage = "Bienvenido a la API de Productos"
const notFoundDetail = "Producto no encontrado"

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/productos", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.FindAll)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	in, ok := h.decodeAndValidate(w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondDetail(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondDetail(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := h.parseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondDetail(w, mLogger, http.StatusNotFound, notFoundDetail)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondDetail(w, mLogger, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Update overwrites an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := h.parseID(w, r, mLogger)
	if !ok {
		return
	}
	in, ok := h.decodeAndValidate(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondDetail(w, mLogger, http.StatusNotFound, notFoundDetail)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondDetail(w, mLogger, http.StatusInternalServerError, "Failed to update product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := h.parseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondDetail(w, mLogger, http.StatusNotFound, notFoundDetail)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondDetail(w, mLogger, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// Root returns the welcome message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, map[string]string{"message": welcomeMessage})
}

// HealthCheck reports the service and storage backend status. An unreachable
// backend is a non-fatal unhealthy payload, not an error status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	if err := h.service.HealthCheck(r.Context()); err != nil {
		mLogger.WarnContext(r.Context(), "Health check failed", "error", err)
		web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{
			"status":   "unhealthy",
			"service":  ServiceName,
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{
		"status":   "healthy",
		"service":  ServiceName,
		"database": "connected",
	})
}

// decodeAndValidate decodes the request body into a product.Input and runs
// the validation contract. Malformed JSON, wrong field types and semantic
// violations all surface as 422 with the same field-tagged detail shape.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (product.Input, bool) {
	var in product.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		respondValidation(w, mLogger, decodeErrors(err))
		return product.Input{}, false
	}
	if errs := in.Validate(); errs != nil {
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errs)
		respondValidation(w, mLogger, errs)
		return product.Input{}, false
	}
	return in, true
}

// parseID extracts the integer product ID from the request path.
// A non-integer value is a 422, mirroring the body validation shape.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Invalid product ID in path", "value", raw)
		respondValidation(w, mLogger, []product.FieldError{{
			Loc:  []string{"path", "product_id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}})
		return 0, false
	}
	return id, true
}

func respondValidation(w http.ResponseWriter, logger *slog.Logger, errs []product.FieldError) {
	web.RespondJSON(w, logger, http.StatusUnprocessableEntity, map[string]any{"detail": errs})
}

// decodeErrors folds JSON decode failures into the validation detail shape
// so the client sees wrong types and malformed bodies the same way as
// semantic violations.
func decodeErrors(err error) []product.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []product.FieldError{{
			Loc:  []string{"body", typeErr.Field},
			Msg:  "value is not a valid " + typeName(typeErr.Type),
			Type: "type_error." + typeName(typeErr.Type),
		}}
	}
	return []product.FieldError{{
		Loc:  []string{"body"},
		Msg:  "invalid JSON body",
		Type: "value_error.jsondecode",
	}}
}

// typeName maps a Go target type to the wire-level type label used in
// validation errors.
func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "str"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "integer"
	default:
		return t.Kind().String()
	}
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}
