package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Brownie44l1/weather-api/internal/storage"
	"github.com/Brownie44l1/weather-api/internal/weather"
)

const (
	msgMissingInput = "Please enter both temperature and humidity"
	msgInvalidInput = "Please enter valid numeric values for temperature and humidity"
	maxBodyBytes    = 1 << 16
	defaultLimit    = 50
)

var tracer = otel.Tracer("weather-api")

type Handler struct {
	adapter *weather.Adapter
	store   storage.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler wires the HTTP API. store may be nil, which disables history.
func NewHandler(adapter *weather.Adapter, store storage.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		adapter: adapter,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"status": "healthy"}, http.StatusOK)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	labels := weather.Categories()
	out := make([]CategoryResponse, len(labels))
	for i, l := range labels {
		out[i] = CategoryResponse{Index: i, Label: l, Icon: l.Icon()}
	}
	WriteJSON(w, out, http.StatusOK)
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "weather-api: predict")
	defer span.End()

	var req PredictionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request body")
		WriteError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	sample, err := weather.ParseSample(string(req.Temperature), string(req.Humidity))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid input")
		if errors.Is(err, weather.ErrMissingInput) {
			WriteError(w, msgMissingInput, http.StatusBadRequest)
		} else {
			WriteError(w, msgInvalidInput, http.StatusUnprocessableEntity)
		}
		return
	}
	span.SetAttributes(
		attribute.Float64("weather.temperature_c", float64(sample.TemperatureCelsius)),
		attribute.Float64("weather.humidity_pct", float64(sample.HumidityPercent)),
	)

	prediction, err := h.adapter.Predict(ctx, sample)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inference failed")
		h.logger.Error("prediction failed",
			"temperature", sample.TemperatureCelsius,
			"humidity", sample.HumidityPercent,
			"error", err,
		)
		WriteError(w, "Prediction failed", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(
		attribute.String("weather.label", string(prediction.Label)),
		attribute.Int("weather.index", prediction.Index),
	)
	h.logger.Debug("predicted weather", "label", prediction.Label, "index", prediction.Index)

	if h.store != nil {
		if err := h.store.SavePrediction(ctx, storage.NewRecord(sample, prediction, h.now())); err != nil {
			span.RecordError(err)
			h.logger.Warn("failed to save prediction", "error", err)
		}
	}

	span.SetStatus(codes.Ok, "")
	WriteJSON(w, newPredictionResponse(prediction), http.StatusOK)
}

func (h *Handler) Predictions(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	if h.store == nil {
		WriteJSON(w, []storage.Record{}, http.StatusOK)
		return
	}

	records, err := h.store.ListPredictions(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list predictions", "error", err)
		WriteError(w, "Failed to list predictions", http.StatusInternalServerError)
		return
	}
	WriteJSON(w, records, http.StatusOK)
}

// WriteJSON encodes data before writing the status so an encoding failure
// becomes a 500 instead of a truncated response.
func WriteJSON(w http.ResponseWriter, data interface{}, code int) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("error encoding JSON", "error", err)
		body = []byte(`{"message":"Internal server error"}`)
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

func WriteError(w http.ResponseWriter, msg string, code int) {
	WriteJSON(w, ErrorResponse{Message: msg}, code)
}
