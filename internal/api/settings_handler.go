package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-planner/internal/api/shared"
	"github.com/phrazzld/scry-planner/internal/backup"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/phrazzld/scry-planner/internal/redact"
	"github.com/phrazzld/scry-planner/internal/service"
)

// SettingsHandler serves settings, backups and data management.
type SettingsHandler struct {
	planner service.PlannerService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(planner service.PlannerService, logger *slog.Logger) *SettingsHandler {
	if planner == nil {
		panic("planner cannot be nil for SettingsHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{
		planner: planner,
		logger:  logger.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.planner.Settings(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings. The body is decoded over the
// current settings, so omitted fields keep their values.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	settings, err := h.planner.Settings(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}
	if err := shared.DecodeJSON(r, &settings); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	saved, err := h.planner.UpdateSettings(r.Context(), settings)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// DownloadBackup handles GET /backup
func (h *SettingsHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	doc, err := h.planner.Export(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export data")
		return
	}

	var buf bytes.Buffer
	if err := backup.Encode(&buf, doc); err != nil {
		HandleAPIError(w, r, err, "Failed to export data")
		return
	}

	filename := BackupFilename(h.planner.Today().Format())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("failed to write backup", slog.String("error", redact.Error(err)))
		return
	}

	log.Info("backup downloaded", slog.Int("tasks", len(doc.Tasks)))
}

// RestoreBackup handles POST /backup; the body is a backup document.
func (h *SettingsHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := backup.Decode(http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes))
	if err != nil {
		HandleAPIError(w, r, err, "", shared.WithElevatedLogLevel())
		return
	}

	if err := h.planner.Import(r.Context(), doc); err != nil {
		HandleAPIError(w, r, err, "Failed to restore backup", shared.WithElevatedLogLevel())
		return
	}

	info, err := h.planner.StorageInfo(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Backup restored but storage info is unavailable")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

// ClearData handles DELETE /data
func (h *SettingsHandler) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.ClearAll(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to clear data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StorageInfo handles GET /storage
func (h *SettingsHandler) StorageInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.planner.StorageInfo(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read storage info")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

// BackupFilename names a backup taken on the Solar Hijri date given in
// YYYY/MM/DD form.
func BackupFilename(date string) string {
	return "daily-tasks-backup-" + strings.ReplaceAll(date, "/", "-") + ".json"
}
