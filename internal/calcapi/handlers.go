package calcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints on top of a session service.
type Handler struct {
	sessions *session.Service
	validate *validator.Validate
}

func NewHandler(sessions *session.Service) *Handler {
	return &Handler{
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ---------------------------------------------------------------------------
// Handlers — binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, calculator.Add)
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, calculator.Subtract)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, calculator.Multiply)
}

// Divide handles POST /calculator/divide. Division by zero is not an error:
// the result is null and the display reads "really?".
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, calculator.Divide)
}

// handleBinaryOp is the shared implementation for all binary calculator operations.
func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, op calculator.Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.Name()

	// --- 1. Custom child span ---
	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	// --- 2. Decode request body ---
	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	// --- 3. Perform computation (timed for histogram) ---
	start := time.Now()
	result, err := calculator.Apply(op, req.A, req.B)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, calculator.ErrorText, err, http.StatusBadRequest, w)
		return
	}

	display := calculator.FormatNumber(result)

	// --- 4. Record metrics ---
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	resp := CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Display:   display,
	}
	if finite(result) {
		resultGauge.Record(ctx, result, attrs)
		resp.Result = &result
		span.SetAttributes(attribute.Float64("calculator.result", result))
	}

	// --- 5. Span event with the display ---
	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("display", display),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	// --- 6. Structured log with trace correlation ---
	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.String("display", display),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Handlers — key sequences
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate. It replays keys on a calculator
// that lives only for the request.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	req, ok := h.decodeKeys(w, r.WithContext(ctx), span, logger, "evaluate")
	if !ok {
		return
	}

	steps, calc, err := h.sessions.Evaluate(ctx, req.Keys)
	if err != nil {
		h.recordSessionError(w, r.WithContext(ctx), span, logger, "evaluate", err)
		return
	}

	h.recordKeys(ctx, span, "evaluate", len(req.Keys), calc.LastResult())

	logger.Info("key sequence evaluated",
		zap.Int("keys", len(req.Keys)),
		zap.String("display", calc.Display()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		Steps:   steps,
		Display: calc.Display(),
		Phase:   string(calc.Phase()),
	})
}

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	sess, err := h.sessions.Create(ctx)
	if err != nil {
		h.recordSessionError(w, r.WithContext(ctx), span, logger, "session.create", err)
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusCreated, sessionResponse(sess))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	sess, err := h.sessions.Get(ctx, id)
	if err != nil {
		h.recordSessionError(w, r.WithContext(ctx), span, logger, "session.get", err)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, sessionResponse(sess))
}

// PressKeys handles POST /calculator/sessions/{id}/keys
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.keys",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	req, ok := h.decodeKeys(w, r.WithContext(ctx), span, logger, "session.keys")
	if !ok {
		return
	}

	res, err := h.sessions.Press(ctx, id, req.Keys)
	if err != nil {
		h.recordSessionError(w, r.WithContext(ctx), span, logger, "session.keys", err)
		return
	}

	resp := KeysResponse{
		SessionID: res.Session.ID,
		Steps:     res.Steps,
		Display:   res.Session.State.Display,
		Phase:     string(res.Phase),
	}
	h.recordKeys(ctx, span, "session.keys", len(req.Keys), res.LastResult)

	logger.Info("session keys pressed",
		zap.String("session_id", id),
		zap.Int("keys", len(req.Keys)),
		zap.String("display", resp.Display),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := h.sessions.Delete(ctx, id); err != nil {
		h.recordSessionError(w, r.WithContext(ctx), span, logger, "session.delete", err)
		return
	}

	span.SetStatus(codes.Ok, "")
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *Handler) decodeKeys(w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, opName string) (KeysRequest, bool) {
	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(r.Context(), span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return req, false
	}

	if err := h.validate.Struct(req); err != nil {
		observability.RecordError(r.Context(), span, logger, errorCounter, opName, "invalid keys", err, http.StatusBadRequest, w)
		return req, false
	}

	span.SetAttributes(attribute.Int("calculator.keys_count", len(req.Keys)))
	return req, true
}

func (h *Handler) recordSessionError(w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, opName string, err error) {
	status, msg := http.StatusInternalServerError, "internal error"

	switch {
	case errors.Is(err, session.ErrUnknownKey):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrSessionNotFound):
		status, msg = http.StatusNotFound, session.ErrSessionNotFound.Error()
	case errors.Is(err, session.ErrSessionLocked):
		status, msg = http.StatusConflict, session.ErrSessionLocked.Error()
	}

	observability.RecordError(r.Context(), span, logger, errorCounter, opName, msg, err, status, w)
}

func (h *Handler) recordKeys(ctx context.Context, span trace.Span, opName string, n int, lastResult float64) {
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	keysCounter.Add(ctx, int64(n), attrs)
	opsCounter.Add(ctx, 1, attrs)
	if finite(lastResult) {
		resultGauge.Record(ctx, lastResult, attrs)
	}
	span.SetStatus(codes.Ok, "")
}

func sessionResponse(sess *session.Session) SessionResponse {
	resp := SessionResponse{
		SessionID: sess.ID,
		Display:   sess.State.Display,
		State:     sess.State,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
	if calc, err := calculator.Restore(sess.State); err == nil {
		resp.Phase = string(calc.Phase())
	}
	return resp
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
