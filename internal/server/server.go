// Package server exposes the forecast computation over HTTP for an external
// presentation surface. It serves data only; chart rendering and input
// widgets live elsewhere.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/mwhitfield/salary-truth/internal/config"
	"github.com/mwhitfield/salary-truth/internal/forecast"
	"github.com/mwhitfield/salary-truth/pkg/constants"
	"github.com/mwhitfield/salary-truth/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the forecast API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Forecast API endpoint (file upload)
	mux.HandleFunc("/api/forecast", h.handleForecast)

	// Forecast API endpoint for editor-driven recomputes
	mux.HandleFunc("/api/editor/forecast", h.handleForecastEditor)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type forecastResponse struct {
	Series   []string       `json:"series"`
	Rows     []forecastRow  `json:"rows"`
	CSV      string         `json:"csv"`
	Summary  summaryPayload `json:"summary"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

type forecastRow struct {
	Year   int           `json:"year"`
	Values []seriesValue `json:"values"`
}

type seriesValue struct {
	Amount    float64  `json:"amount"`
	Rate      float64  `json:"rate"`
	RealTerms *float64 `json:"realTerms,omitempty"`
}

type summaryPayload struct {
	ReferenceIndex string          `json:"referenceIndex"`
	Series         []seriesSummary `json:"series"`
}

type seriesSummary struct {
	Name            string   `json:"name"`
	Kind            string   `json:"kind"`
	FinalValue      float64  `json:"finalValue"`
	RealTermsGap    *float64 `json:"realTermsGap,omitempty"`
	RealTermsChange *float64 `json:"realTermsChange,omitempty"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleForecast")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleForecast")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleForecast")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleForecast"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleForecast")
		return
	}

	h.runForecast(w, buf.Bytes(), start, "server.handleForecast")
}

func (h *handler) handleForecastEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleForecastEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleForecastEditor")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleForecastEditor")
		return
	}

	h.runForecast(w, configBytes, start, "server.handleForecastEditor")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runForecast(w http.ResponseWriter, configBytes []byte, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	results, summary, err := forecast.GetForecast(h.logger, *cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	response := forecastResponse{
		Series:   extractSeriesNames(results),
		Rows:     buildRows(results),
		CSV:      output.CsvString(results),
		Summary:  buildSummary(summary),
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("series", len(response.Series)),
		zap.Int("rows", len(response.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("forecast request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func extractSeriesNames(results []forecast.Result) []string {
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}
	return names
}

func buildRows(results []forecast.Result) []forecastRow {
	if len(results) == 0 {
		return nil
	}

	// All series share the same horizon.
	rows := make([]forecastRow, 0, len(results[0].Periods))
	for i, period := range results[0].Periods {
		row := forecastRow{Year: int(period)}
		for _, result := range results {
			value := seriesValue{
				Amount: result.Values[i],
				Rate:   result.EffectiveRates[i],
			}
			if result.Kind == forecast.KindSalary {
				v := result.Erosion[i]
				value.RealTerms = &v
			}
			row.Values = append(row.Values, value)
		}
		rows = append(rows, row)
	}

	return rows
}

func buildSummary(summary forecast.Summary) summaryPayload {
	payload := summaryPayload{ReferenceIndex: summary.ReferenceIndex}
	for _, series := range summary.Series {
		entry := seriesSummary{
			Name:       series.Name,
			Kind:       series.Kind,
			FinalValue: series.FinalValue,
		}
		if series.Kind == forecast.KindSalary {
			gap := series.RealTermsGap
			change := series.RealTermsChange
			entry.RealTermsGap = &gap
			entry.RealTermsChange = &change
		}
		payload.Series = append(payload.Series, entry)
	}
	return payload
}
