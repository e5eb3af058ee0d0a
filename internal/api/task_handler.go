package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-planner/internal/api/shared"
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/phrazzld/scry-planner/internal/redact"
	"github.com/phrazzld/scry-planner/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	planner service.PlannerService
	logger  *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(planner service.PlannerService, logger *slog.Logger) *TaskHandler {
	if planner == nil {
		panic("planner cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		planner: planner,
		logger:  logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.planner.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(tasks))
}

// TodayTasks handles GET /tasks/today
func (h *TaskHandler) TodayTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.planner.TodayTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list today's tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(tasks))
}

// TasksByDate handles GET /tasks/by-date?date=YYYY/MM/DD
func (h *TaskHandler) TasksByDate(w http.ResponseWriter, r *http.Request) {
	date, err := getQueryDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.planner.TasksForDate(r.Context(), date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(tasks))
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	input := service.CreateTaskInput{
		Title: req.Title,
		Year:  req.Year,
		Month: req.Month,
		Day:   req.Day,
		Kind:  req.Type,
	}
	if req.Date != "" {
		d, err := calendar.Parse(req.Date)
		if err != nil {
			HandleAPIError(w, r, domain.NewValidationError("date", "must be a valid YYYY/MM/DD date", err), "")
			return
		}
		input.Year, input.Month, input.Day = d.Year(), d.Month(), d.Day()
	}

	task, err := h.planner.CreateTask(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// GetTask handles GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.planner.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PATCH /tasks/{id}. Title and completion are applied
// in that order; a failure after the rename leaves the rename saved.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Title == nil && req.Completed == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Nothing to update")
		return
	}

	var task domain.StudyTask
	if req.Title != nil {
		if task, err = h.planner.RenameTask(r.Context(), id, *req.Title); err != nil {
			HandleAPIError(w, r, err, "Failed to update task")
			return
		}
	}
	if req.Completed != nil {
		if task, err = h.planner.SetTaskCompleted(r.Context(), id, *req.Completed); err != nil {
			HandleAPIError(w, r, err, "Failed to update task")
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.planner.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
