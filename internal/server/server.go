// Package server exposes the calculators over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/omnicalc/internal/metrics"
	"github.com/iwvelando/omnicalc/pkg/bikram"
	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/currency"
	"github.com/iwvelando/omnicalc/pkg/finance"
	"github.com/iwvelando/omnicalc/pkg/loans"
	"github.com/iwvelando/omnicalc/pkg/validation"
	"go.uber.org/zap"
)

// RatesProvider supplies exchange rates for the currency endpoints.
type RatesProvider interface {
	Latest(ctx context.Context) (*currency.Rates, error)
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	validator   *validation.Validator
	rates       RatesProvider
	metrics     *metrics.Metrics
	now         func() time.Time
	timeout     time.Duration
	rateLimit   RateLimitConfig
	schedules   *loans.AmortizationScheduleGenerator
	investments *finance.InvestmentProcessor
}

// Option customizes the handler built by NewHandler.
type Option func(*handler)

// WithRates enables the currency endpoints.
func WithRates(p RatesProvider) Option {
	return func(h *handler) { h.rates = p }
}

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *handler) { h.metrics = m }
}

// WithClock replaces the clock used for "today" defaults.
func WithClock(now func() time.Time) Option {
	return func(h *handler) { h.now = now }
}

// WithRateLimit limits requests per client IP.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(h *handler) { h.rateLimit = cfg }
}

// WithTimeout bounds the time spent on a single request.
func WithTimeout(d time.Duration) Option {
	return func(h *handler) { h.timeout = d }
}

// NewHandler constructs the HTTP handler for the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		validator:   validation.New(),
		now:         time.Now,
		schedules:   loans.NewAmortizationScheduleGenerator(logger),
		investments: finance.NewInvestmentProcessor(logger),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.requestLogger)
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(h.recoverPanic)
	r.Use(chimw.CleanPath)
	if h.rateLimit.RequestsPerSecond > 0 {
		r.Use(h.limitRate(newIPRateLimiter(h.rateLimit, h.now)))
	}
	if h.timeout > 0 {
		r.Use(chimw.Timeout(h.timeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
	})

	r.Get("/api/version", h.handleVersion)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Route("/api/date", func(r chi.Router) {
		r.Post("/ad-to-bs", h.handleAdToBs)
		r.Post("/bs-to-ad", h.handleBsToAd)
		r.Get("/bs-months", h.handleBsMonths)
		r.Get("/today", h.handleToday)
		r.Post("/age", h.handleAge)
		r.Post("/diff", h.handleDiff)
		r.Post("/add", h.handleAddDays)
		r.Post("/timezone", h.handleTimezone)
	})

	r.Route("/api/financial", func(r chi.Router) {
		r.Post("/loan", h.handleLoan)
		r.Post("/mortgage", h.handleMortgage)
		r.Post("/investment", h.handleInvestment)
		r.Post("/amortization", h.handleAmortization)
	})

	r.Route("/api/health", func(r chi.Router) {
		r.Post("/bmi", h.handleBMI)
		r.Post("/bmr", h.handleBMR)
		r.Post("/ideal-weight", h.handleIdealWeight)
	})

	r.Get("/api/units", h.handleUnits)
	r.Post("/api/units/convert", h.handleUnitConvert)

	r.Route("/api/currency", func(r chi.Router) {
		r.Get("/rates", h.handleCurrencyRates)
		r.Post("/convert", h.handleCurrencyConvert)
	})

	r.Route("/api/calc", func(r chi.Router) {
		r.Get("/functions", h.handleCalcFunctions)
		r.Post("/evaluate", h.handleCalcEvaluate)
		r.Post("/function", h.handleCalcFunction)
	})

	return r
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	Valid   *bool    `json:"valid,omitempty"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeJSON reads a size limited JSON body into dst and validates it. It
// writes the error response itself and reports whether the caller should
// continue.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "request body is empty", op)
		default:
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err), op)
		}
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.respondValidation(w, r, err, op)
		return false
	}
	return true
}

func (h *handler) respondValidation(w http.ResponseWriter, r *http.Request, err error, op string) {
	details := errorDetails(err)
	loggerFromContext(r.Context(), h.logger).Warn("request validation failed",
		zap.String("op", op),
		zap.Strings("details", details),
	)
	h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "request validation failed", Details: details})
}

// respondCalcError maps a calculator error onto a status code.
func (h *handler) respondCalcError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, bikram.ErrInvalidDate):
		h.respondInvalidDate(w, r, err, op)
		return
	case errors.Is(err, currency.ErrRateLimited):
		status = http.StatusTooManyRequests
	// A timed out fetch is also an upstream failure, so check the deadline first.
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, currency.ErrUpstream):
		status = http.StatusBadGateway
	}
	h.respondErrorWithOp(w, r, status, err.Error(), op)
}

func (h *handler) respondInvalidDate(w http.ResponseWriter, r *http.Request, err error, op string) {
	loggerFromContext(r.Context(), h.logger).Warn("invalid calendar date",
		zap.String("op", op),
		zap.Error(err),
	)
	valid := false
	h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Valid: &valid})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	logger := loggerFromContext(r.Context(), h.logger)
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request failed", fields...)
	}

	h.writeJSON(w, r, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		loggerFromContext(r.Context(), h.logger).Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

// errorDetails flattens a multi-error into one message per failure.
func errorDetails(err error) []string {
	var details []string
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			details = append(details, errorDetails(e)...)
		}
		return details
	}
	return []string{err.Error()}
}
