package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dmartinez/todo-api/internal/api"
	"github.com/dmartinez/todo-api/internal/auth"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

type CreateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes mounts the item routes on an authenticated router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/completed", h.listCompleted)
	r.Get("/pending", h.listPending)
	r.Get("/metrics", h.metrics)
	r.Post("/", h.create)
	r.Get("/{id}", h.getByID)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(userID)
	if err != nil {
		h.log.Error("failed to list todo items", zap.String("user_id", userID), zap.Error(err))
		api.WriteInternalError(w)
		return
	}

	api.WriteSuccess(w, http.StatusOK, listMessage(items), items)
}

func (h *Handler) listCompleted(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, true)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, false)
}

func (h *Handler) listByStatus(w http.ResponseWriter, r *http.Request, completed bool) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListByStatus(userID, completed)
	if err != nil {
		h.log.Error("failed to list todo items by status",
			zap.String("user_id", userID),
			zap.Bool("completed", completed),
			zap.Error(err))
		api.WriteInternalError(w)
		return
	}

	api.WriteSuccess(w, http.StatusOK, listMessage(items), items)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(id, userID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			api.WriteFailure(w, http.StatusNotFound, "ToDoItem not found")
			return
		}
		h.log.Error("failed to get todo item", zap.Int("id", id), zap.Error(err))
		api.WriteInternalError(w)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "ToDoItem retrieved successfully", item)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.service.Create(userID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			api.WriteFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("failed to create todo item", zap.String("user_id", userID), zap.Error(err))
		api.WriteInternalError(w)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", api.ToDoItems, item.ID))
	api.WriteSuccess(w, http.StatusCreated, "ToDoItem created successfully", item)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.service.Update(id, userID, req.Title, req.Description, req.IsCompleted)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			api.WriteFailure(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrItemNotFound):
			api.WriteFailure(w, http.StatusNotFound, "ToDoItem not found")
		default:
			h.log.Error("failed to update todo item", zap.Int("id", id), zap.Error(err))
			api.WriteInternalError(w)
		}
		return
	}

	api.WriteSuccess(w, http.StatusOK, "ToDoItem updated successfully", item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(id, userID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			api.WriteFailure(w, http.StatusNotFound, "ToDoItem not found")
			return
		}
		h.log.Error("failed to delete todo item", zap.Int("id", id), zap.Error(err))
		api.WriteInternalError(w)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "ToDoItem deleted successfully", nil)
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	metrics, err := h.service.Metrics(userID)
	if err != nil {
		h.log.Error("failed to get metrics", zap.String("user_id", userID), zap.Error(err))
		api.WriteInternalError(w)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "Metrics retrieved successfully", metrics)
}

// callerID resolves the authenticated user from the request context. The id
// never comes from a request parameter.
func (h *Handler) callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := auth.GetUserIDFromContext(r.Context())
	if err != nil {
		api.WriteFailure(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteFailure(w, http.StatusBadRequest, "Invalid item id")
		return 0, false
	}
	return id, true
}

func listMessage(items []ItemResponse) string {
	if len(items) == 0 {
		return "No ToDoItems available right now"
	}
	return "ToDoItems retrieved successfully"
}
