package tasks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/auratask-go/apperror"
	"github.com/user/auratask-go/auth"
)

// Handlers exposes the task service over HTTP. Every route here sits
// behind the auth middleware; the owner id always comes from the request
// context it populates.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the task routes on the given router.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleList)
	router.Post("/", h.handleCreate)
	router.Get("/insights", h.handleInsights)
	router.Patch("/{id}", h.handleUpdate)
	router.Delete("/{id}", h.handleDelete)
}

// ownerID extracts the authenticated user id or writes a 401.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("access denied", nil))
	}
	return id, ok
}

// handleList godoc
// @Summary List tasks
// @Description Returns the authenticated user's tasks, most recent first.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} tasks.Task
// @Failure 401 {object} apperror.ErrorResponse "Missing token"
// @Router /api/tasks [get]
func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	list, err := h.service.List(r.Context(), owner)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// handleCreate godoc
// @Summary Create a task
// @Description Creates a task owned by the authenticated user.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskBody body tasks.CreateTaskRequest true "Task fields"
// @Success 200 {object} tasks.Task
// @Failure 400 {object} apperror.ErrorResponse "Invalid payload"
// @Router /api/tasks [post]
func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	task, err := h.service.Create(r.Context(), owner, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, task)
}

// handleUpdate godoc
// @Summary Update a task
// @Description Applies a partial update to one of the authenticated user's tasks.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Param taskBody body tasks.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} tasks.Task
// @Failure 400 {object} apperror.ErrorResponse "Invalid payload"
// @Failure 404 {object} apperror.ErrorResponse "Task absent or owned by another user"
// @Router /api/tasks/{id} [patch]
func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	task, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), owner, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, task)
}

// handleDelete godoc
// @Summary Delete a task
// @Description Deletes one of the authenticated user's tasks. Succeeds even when no such task exists.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Success 200 {object} tasks.DeleteResponse
// @Router /api/tasks/{id} [delete]
func (h *Handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), owner); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

// handleInsights godoc
// @Summary Task insights
// @Description Runs the suggestion heuristic over the authenticated user's tasks.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} suggest.Insight
// @Router /api/tasks/insights [get]
func (h *Handlers) handleInsights(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	insight, err := h.service.Insights(r.Context(), owner)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, insight)
}
