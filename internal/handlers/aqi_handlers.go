package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"aqi-predictor/internal/advisory"
	"aqi-predictor/internal/models"
	"aqi-predictor/internal/services"
	"aqi-predictor/pkg/logging"
	"aqi-predictor/pkg/metrics"
)

// AQIHandler serves the prediction form and its JSON mirror
type AQIHandler struct {
	service *services.PredictionService
	logger  *logging.ContextLogger
	metrics *metrics.Collector
}

// NewAQIHandler creates a new AQI handler
func NewAQIHandler(
	service *services.PredictionService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *AQIHandler {
	return &AQIHandler{
		service: service,
		logger:  logger.WithFields(logging.Fields{"component": "api"}),
		metrics: metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PredictResponse is the JSON body of POST /api/predict
type PredictResponse struct {
	*services.PredictionResult
	Clamped []string `json:"clamped,omitempty"`
}

// BandResponse is one row of GET /api/bands; Max is null for the open-ended band
type BandResponse struct {
	Category   advisory.Category `json:"category"`
	Min        int               `json:"min"`
	Max        *int              `json:"max"`
	Label      string            `json:"label"`
	ColorToken string            `json:"color_token"`
	Color      string            `json:"color"`
	Points     []string          `json:"points"`
}

// Index handles GET /
func (h *AQIHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, newPageData(models.DefaultReading()), http.StatusOK)
}

// PredictForm handles POST /predict
func (h *AQIHandler) PredictForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/predict").Observe(time.Since(startTime).Seconds())
	}()

	if err := r.ParseForm(); err != nil {
		data := newPageData(models.DefaultReading())
		data.Error = "could not read the submitted form"
		h.metrics.RecordAPIError("bad_request", "/predict")
		h.renderPage(w, r, data, http.StatusBadRequest)
		return
	}

	reading, err := parseFormReading(r)
	if err != nil {
		data := newPageData(reading)
		data.Error = err.Error()
		h.metrics.RecordAPIError("bad_request", "/predict")
		h.renderPage(w, r, data, http.StatusBadRequest)
		return
	}

	reading = h.clamp(r, reading)
	data := newPageData(reading)

	result, err := h.service.Predict(ctx, reading)
	if err != nil {
		status := statusForError(err)
		h.metrics.RecordAPIError(errorType(status), "/predict")
		data.Error = "this prediction was aborted: " + err.Error()
		h.renderPage(w, r, data, status)
		return
	}

	data.Result = result
	h.renderPage(w, r, data, http.StatusOK)
}

// PredictJSON handles POST /api/predict
func (h *AQIHandler) PredictJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/predict").Observe(time.Since(startTime).Seconds())
	}()

	var raw map[string]*float64
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.metrics.RecordAPIError("bad_request", "/api/predict")
		h.sendError(w, r, "request body must be a JSON object of numeric pollutant readings", http.StatusBadRequest)
		return
	}

	values, err := presentFeatures(raw)
	if err != nil {
		h.metrics.RecordAPIError("schema_mismatch", "/api/predict")
		h.sendError(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	reading, err := models.FromFeatures(values)
	if err != nil {
		h.metrics.RecordAPIError("schema_mismatch", "/api/predict")
		h.sendError(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	reading, clamped := reading.Clamp()
	h.metrics.RecordClamped(clamped)

	result, err := h.service.Predict(ctx, reading)
	if err != nil {
		status := statusForError(err)
		h.logger.Error(ctx, "[API_PREDICT_ERROR] Prediction failed", logging.Fields{
			"status": status,
		}, err)
		h.metrics.RecordAPIError(errorType(status), "/api/predict")
		h.sendError(w, r, err.Error(), status)
		return
	}

	h.metrics.RecordAPIRequest("/api/predict", "POST", "200")
	h.sendJSON(w, PredictResponse{PredictionResult: result, Clamped: clamped}, http.StatusOK)
}

// presentFeatures drops the pointer layer of a decoded body. A JSON null is
// a feature without a value, not a zero reading.
func presentFeatures(raw map[string]*float64) (map[string]float64, error) {
	values := make(map[string]float64, len(raw))
	var nulls []string
	for name, v := range raw {
		if v == nil {
			nulls = append(nulls, name)
			continue
		}
		values[name] = *v
	}

	if len(nulls) > 0 {
		sort.Strings(nulls)
		return nil, &models.SchemaMismatchError{
			Expected: models.FeatureNames,
			Got:      nulls,
			Message:  "features without a value: " + strings.Join(nulls, ", "),
		}
	}
	return values, nil
}

// GetAdvisory handles GET /api/advisory?aqi=N
func (h *AQIHandler) GetAdvisory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	aqiStr := r.URL.Query().Get("aqi")
	aqi, err := strconv.Atoi(aqiStr)
	if err != nil || aqi < 0 {
		h.metrics.RecordAPIError("bad_request", "/api/advisory")
		h.sendError(w, r, "invalid aqi, expected a non-negative integer", http.StatusBadRequest)
		return
	}

	result := h.service.Classify(ctx, models.AQIPrediction(aqi))

	h.metrics.RecordAPIRequest("/api/advisory", "GET", "200")
	h.sendJSON(w, result, http.StatusOK)
}

// GetBands handles GET /api/bands
func (h *AQIHandler) GetBands(w http.ResponseWriter, r *http.Request) {
	bands := advisory.Bands()
	response := make([]BandResponse, len(bands))

	for i, b := range bands {
		response[i] = BandResponse{
			Category:   b.Category,
			Min:        b.Min,
			Label:      b.Label,
			ColorToken: b.ColorToken,
			Color:      b.Color,
			Points:     b.Points,
		}
		if b.Bounded() {
			upper := b.Max
			response[i].Max = &upper
		}
	}

	h.metrics.RecordAPIRequest("/api/bands", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *AQIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// parseFormReading reads the four pollutant fields from a submitted form.
// Values that fail to parse keep their defaults so the form can be re-rendered.
func parseFormReading(r *http.Request) (models.PollutantReading, error) {
	values := make(map[string]float64, len(models.FeatureNames))
	defaults := models.DefaultReading()
	var problems []string

	for _, b := range models.Bounds() {
		raw := strings.TrimSpace(r.PostFormValue(b.Field))
		if raw == "" {
			values[b.Field], _ = defaults.Value(b.Field)
			problems = append(problems, fmt.Sprintf("%s is required", b.Label))
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			values[b.Field], _ = defaults.Value(b.Field)
			problems = append(problems, fmt.Sprintf("%s must be a number", b.Label))
			continue
		}
		values[b.Field] = v
	}

	reading, err := models.FromFeatures(values)
	if err != nil {
		return defaults, err
	}
	if len(problems) > 0 {
		return reading, errors.New(strings.Join(problems, "; "))
	}
	return reading, nil
}

func (h *AQIHandler) clamp(r *http.Request, reading models.PollutantReading) models.PollutantReading {
	clamped, fields := reading.Clamp()
	if len(fields) > 0 {
		h.metrics.RecordClamped(fields)
		h.logger.Debug(r.Context(), "[INPUT_CLAMPED] Pollutant inputs pulled into range", logging.Fields{
			"fields": fields,
		})
	}
	return clamped
}

func statusForError(err error) int {
	var schemaErr *models.SchemaMismatchError
	if errors.As(err, &schemaErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func errorType(status int) string {
	if status == http.StatusUnprocessableEntity {
		return "schema_mismatch"
	}
	return "internal_error"
}

func (h *AQIHandler) renderPage(w http.ResponseWriter, r *http.Request, data pageData, statusCode int) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error(r.Context(), "[RENDER_ERROR] Failed to render page", logging.Fields{
			"path": r.URL.Path,
		}, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write(buf.Bytes())
}

// sendJSON sends a JSON response
func (h *AQIHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *AQIHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers the form, JSON and documentation routes
func (h *AQIHandler) RegisterRoutes(router *mux.Router) {
	router.Use(RequestIDMiddleware)

	router.HandleFunc("/", h.Index).Methods("GET")
	router.HandleFunc("/predict", h.PredictForm).Methods("POST")
	router.HandleFunc("/api/predict", h.PredictJSON).Methods("POST")
	router.HandleFunc("/api/advisory", h.GetAdvisory).Methods("GET")
	router.HandleFunc("/api/bands", h.GetBands).Methods("GET")
	router.HandleFunc("/api/docs/openapi.json", OpenAPISpec).Methods("GET")
	router.HandleFunc("/api/docs", SwaggerUI).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
