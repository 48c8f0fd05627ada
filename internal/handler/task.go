package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Navneet-kaur7/todo-app/internal/middleware"
	"github.com/Navneet-kaur7/todo-app/internal/model"
	"github.com/Navneet-kaur7/todo-app/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleListTasks handles GET /api/tasks requests.
func (h *TaskHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// HandleCreateTask handles POST /api/tasks requests.
func (h *TaskHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.service.CreateTask(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// HandleGetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := taskTarget(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetTask(r.Context(), user.ID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleUpdateTask handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := taskTarget(w, r)
	if !ok {
		return
	}

	var req model.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.service.UpdateTask(r.Context(), user.ID, taskID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleDeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := taskTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), user.ID, taskID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("task deleted"))
}

// HandleDeleteCompleted handles DELETE /api/tasks/completed requests.
func (h *TaskHandler) HandleDeleteCompleted(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.DeleteCompleted(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// taskTarget resolves the caller and the {id} path parameter. An id that is not
// a UUID cannot name any task and is reported as not found.
func taskTarget(w http.ResponseWriter, r *http.Request) (*model.User, string, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return nil, "", false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse(service.ErrTaskNotFound.Error()))
		return nil, "", false
	}

	return user, id.String(), true
}
