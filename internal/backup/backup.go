// Package backup encodes and decodes the planner's export document: the
// whole task collection plus the settings, stamped with the export time and
// a format version. Import is all-or-nothing; a document that is not valid
// JSON, lacks a tasks array or contains a task that cannot be decoded is
// rejected as a whole.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
)

// Version is written into every exported document.
const Version = "1.0.0"

// ErrMalformedBackup is returned when a backup document cannot be imported.
var ErrMalformedBackup = errors.New("malformed backup document")

// Document is the export format. Settings is optional on import.
type Document struct {
	Tasks      []domain.StudyTask `json:"tasks"`
	Settings   *domain.Settings   `json:"settings,omitempty"`
	ExportDate time.Time          `json:"exportDate"`
	Version    string             `json:"version"`
}

// New builds a document for export at now.
func New(tasks []domain.StudyTask, settings domain.Settings, now time.Time) Document {
	if tasks == nil {
		tasks = []domain.StudyTask{}
	}
	return Document{
		Tasks:      domain.CloneTasks(tasks),
		Settings:   &settings,
		ExportDate: now.UTC(),
		Version:    Version,
	}
}

// Encode writes doc to w as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// rawDocument defers decoding of tasks so their presence and shape can be
// checked before the tasks themselves are decoded.
type rawDocument struct {
	Tasks      json.RawMessage `json:"tasks"`
	Settings   json.RawMessage `json:"settings"`
	ExportDate *time.Time      `json:"exportDate"`
	Version    string          `json:"version"`
}

// Decode reads a backup document from r.
func Decode(r io.Reader) (Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	tasksJSON := bytes.TrimSpace(raw.Tasks)
	if len(tasksJSON) == 0 || bytes.Equal(tasksJSON, []byte("null")) {
		return Document{}, fmt.Errorf("%w: tasks are missing", ErrMalformedBackup)
	}
	if tasksJSON[0] != '[' {
		return Document{}, fmt.Errorf("%w: tasks must be an array", ErrMalformedBackup)
	}

	var tasks []domain.StudyTask
	if err := json.Unmarshal(tasksJSON, &tasks); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return Document{}, fmt.Errorf("%w: task %d: %v", ErrMalformedBackup, i, err)
		}
	}

	doc := Document{Tasks: tasks, Version: raw.Version}
	if raw.ExportDate != nil {
		doc.ExportDate = *raw.ExportDate
	}

	settingsJSON := bytes.TrimSpace(raw.Settings)
	if len(settingsJSON) > 0 && !bytes.Equal(settingsJSON, []byte("null")) {
		settings := domain.DefaultSettings()
		if err := json.Unmarshal(settingsJSON, &settings); err != nil {
			return Document{}, fmt.Errorf("%w: settings: %v", ErrMalformedBackup, err)
		}
		doc.Settings = &settings
	}

	return doc, nil
}
