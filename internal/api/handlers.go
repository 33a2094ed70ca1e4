package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/yanizio/backend-api/internal/app"
	"github.com/yanizio/backend-api/internal/environment"
	"github.com/yanizio/backend-api/internal/secrets"
)

// maxBody caps POST payloads.
const maxBody = 1 << 20

const secretNote = "Only showing first 3 characters for security"

// optional renders an empty string as JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ── GET /api/health ─────────────────────────────────────────────────

type healthResponse struct {
	Status      string  `json:"status"`
	Service     string  `json:"service"`
	Environment string  `json:"environment"`
	Project     *string `json:"project"`
	Timestamp   string  `json:"timestamp"`
	Version     string  `json:"version"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Service:     app.ServiceName,
		Environment: h.state.Env.Name,
		Project:     optional(h.state.Env.ProjectID),
		Timestamp:   h.timestamp(),
		Version:     app.Version,
	})
}

// ── GET /api/status ─────────────────────────────────────────────────

type secretsConfigured struct {
	DBPassword bool `json:"db_password"`
	APIKey     bool `json:"api_key"`
}

type architecture struct {
	Containerized     bool   `json:"containerized"`
	Runtime           string `json:"runtime"`
	ContainerRegistry string `json:"container_registry"`
}

type statusResponse struct {
	Status            string            `json:"status"`
	Service           string            `json:"service"`
	Environment       string            `json:"environment"`
	EnvironmentColor  string            `json:"environment_color"`
	ProjectID         *string           `json:"project_id"`
	SecretsConfigured secretsConfigured `json:"secrets_configured"`
	Architecture      architecture      `json:"architecture"`
	Timestamp         string            `json:"timestamp"`
	Version           string            `json:"version"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	env, cache := h.state.Env, h.state.Secrets
	writeJSON(w, http.StatusOK, statusResponse{
		Status:           "operational",
		Service:          app.ServiceName,
		Environment:      env.Name,
		EnvironmentColor: env.Color,
		ProjectID:        optional(env.ProjectID),
		SecretsConfigured: secretsConfigured{
			DBPassword: cache.Loaded(secrets.DBPassword),
			APIKey:     cache.Loaded(secrets.APIKey),
		},
		Architecture: architecture{
			Containerized:     true,
			Runtime:           "App Engine Flexible",
			ContainerRegistry: "Artifact Registry",
		},
		Timestamp: h.timestamp(),
		Version:   app.Version,
	})
}

// ── GET /api/data ───────────────────────────────────────────────────

type dataResponse struct {
	Message     string             `json:"message"`
	Environment string             `json:"environment"`
	Items       []environment.Item `json:"items"`
	TotalItems  int                `json:"total_items"`
	Timestamp   string             `json:"timestamp"`
}

func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	items := environment.SampleItems(h.state.Env.Tier)
	writeJSON(w, http.StatusOK, dataResponse{
		Message:     "Data from " + h.state.Env.Name + " environment",
		Environment: h.state.Env.Name,
		Items:       items,
		TotalItems:  len(items),
		Timestamp:   h.timestamp(),
	})
}

// ── POST /api/data ──────────────────────────────────────────────────

type receivedResponse struct {
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Received    any    `json:"received"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// postData accepts any JSON value except null.  An empty object is valid
// data; a missing body is not.
func (h *Handler) postData(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "Payload Too Large")
			return
		}
		h.writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		h.writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	var data any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil || dec.More() {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if data == nil {
		h.writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	h.log.Infow("received post data", "data", data)

	writeJSON(w, http.StatusCreated, receivedResponse{
		Message:     "Data received successfully",
		Environment: h.state.Env.Name,
		Received:    data,
		Status:      "processed",
		Timestamp:   h.timestamp(),
	})
}

// ── GET /api/env-info ───────────────────────────────────────────────

type envConfiguration struct {
	LogLevel  string `json:"log_level"`
	DebugMode bool   `json:"debug_mode"`
}

type envInfoResponse struct {
	Environment      string           `json:"environment"`
	EnvironmentColor string           `json:"environment_color"`
	ProjectID        *string          `json:"project_id"`
	Purpose          string           `json:"purpose"`
	URL              string           `json:"url"`
	Configuration    envConfiguration `json:"configuration"`
	Timestamp        string           `json:"timestamp"`
}

func (h *Handler) envInfo(w http.ResponseWriter, r *http.Request) {
	env := h.state.Env
	writeJSON(w, http.StatusOK, envInfoResponse{
		Environment:      env.Name,
		EnvironmentColor: env.Color,
		ProjectID:        optional(env.ProjectID),
		Purpose:          env.Purpose,
		URL:              env.URL(),
		Configuration: envConfiguration{
			LogLevel:  h.state.LogLevel,
			DebugMode: env.Debug,
		},
		Timestamp: h.timestamp(),
	})
}

// ── GET /api/secret-test ────────────────────────────────────────────

type secretsStatus struct {
	DBPassword secrets.Status `json:"db_password"`
	APIKey     secrets.Status `json:"api_key"`
}

type secretTestResponse struct {
	Environment   string        `json:"environment"`
	SecretsStatus secretsStatus `json:"secrets_status"`
	Note          string        `json:"note"`
	Timestamp     string        `json:"timestamp"`
}

func (h *Handler) secretTest(w http.ResponseWriter, r *http.Request) {
	cache := h.state.Secrets
	writeJSON(w, http.StatusOK, secretTestResponse{
		Environment: h.state.Env.Name,
		SecretsStatus: secretsStatus{
			DBPassword: cache.Status(secrets.DBPassword),
			APIKey:     cache.Status(secrets.APIKey),
		},
		Note:      secretNote,
		Timestamp: h.timestamp(),
	})
}
