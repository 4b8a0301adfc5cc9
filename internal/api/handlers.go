package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/input"
	"github.com/kmacinski/slidewin/internal/session"
)

// Handlers serves the visualizer API.
type Handlers struct {
	gen         *codegen.Generator
	sessions    *session.Store
	maxElements int
}

// NewHandlers creates handlers over a code generator and a session store.
// maxElements caps request sequences; zero means no cap.
func NewHandlers(gen *codegen.Generator, sessions *session.Store, maxElements int) *Handlers {
	return &Handlers{gen: gen, sessions: sessions, maxElements: maxElements}
}

// HandleValidateInput handles POST /api/validate_input.
//
// Description:
//
//	Parses raw text as an array or string sequence. A parse failure is a
//	normal result, reported with valid=false and the failing index.
//
// Response:
//
//	200 OK: ValidateResponse
//	400 Bad Request: Malformed body
func (h *Handlers) HandleValidateInput(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleValidateInput")

	var req ValidateRequest
	if !h.bindJSON(c, logger, &req) {
		return
	}

	seq, err := input.Parse(req.Input, req.Type)
	if err != nil {
		resp := ValidateResponse{Error: err.Error()}
		var verr *input.ValidationError
		if errors.As(err, &verr) {
			resp.Error = verr.Reason
			if verr.Index >= 0 {
				idx := verr.Index
				resp.Index = &idx
			}
		}
		logger.Debug("Input rejected", "error", err)
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{Valid: true, Parsed: &seq})
}

// HandleCalculateStep handles POST /api/calculate_step.
//
// Description:
//
//	Evaluates a single fixed window. Permutation matching takes its window
//	size from the pattern.
//
// Response:
//
//	200 OK: engine.StepResult
//	400 Bad Request: Invalid input, bounds, pattern or algorithm
func (h *Handlers) HandleCalculateStep(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCalculateStep")

	var req CalculateRequest
	if !h.bindJSON(c, logger, &req) {
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = string(engine.Sum)
	}

	seq, spec, err := h.buildSpec(req.Elements, req.Algorithm, string(engine.Fixed), req.WindowSize, req.Pattern)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	res, err := engine.CalculateStep(seq, req.WindowStart, spec)
	if err != nil {
		stepsTotal.WithLabelValues(string(spec.Algorithm), "error").Inc()
		h.fail(c, logger, err)
		return
	}
	stepsTotal.WithLabelValues(string(spec.Algorithm), "ok").Inc()

	logger.Debug("Step calculated",
		"algorithm", spec.Algorithm,
		"window_start", res.WindowStart,
		"window_end", res.WindowEnd)
	c.JSON(http.StatusOK, res)
}

// HandleGenerateCode handles POST /api/generate_code.
//
// Response:
//
//	200 OK: GenerateResponse
//	400 Bad Request: Unknown algorithm or window type
//	404 Not Found: Unknown language or no template for the combination
func (h *Handlers) HandleGenerateCode(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGenerateCode")

	var req GenerateRequest
	if !h.bindJSON(c, logger, &req) {
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = string(engine.Sum)
	}
	if req.Language == "" {
		req.Language = string(codegen.Python)
	}

	alg, err := engine.ParseAlgorithm(req.Algorithm)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	lang, err := codegen.ParseLanguage(req.Language)
	if err != nil {
		codegenTotal.WithLabelValues("unknown", "not_available").Inc()
		h.fail(c, logger, err)
		return
	}
	typ := alg.DefaultWindowType()
	if req.WindowType != "" {
		if typ, err = engine.ParseWindowType(req.WindowType); err != nil {
			h.fail(c, logger, err)
			return
		}
	}

	code, err := h.gen.Generate(codegen.Request{
		Algorithm:  alg,
		WindowType: typ,
		Language:   lang,
		WindowSize: req.WindowSize,
	})
	if err != nil {
		codegenTotal.WithLabelValues(string(lang), "not_available").Inc()
		h.fail(c, logger, err)
		return
	}
	codegenTotal.WithLabelValues(string(lang), "ok").Inc()

	c.JSON(http.StatusOK, GenerateResponse{
		Success:    true,
		Code:       code,
		Language:   lang,
		Algorithm:  alg,
		WindowType: typ,
	})
}

// HandleListCombinations handles GET /api/generate_code/combinations.
func (h *Handlers) HandleListCombinations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"combinations": h.gen.Available()})
}

// HandleCreateScan handles POST /api/scans.
//
// Description:
//
//	Starts a server-side run that is advanced one step per request.
//
// Response:
//
//	201 Created: session.Info
//	400 Bad Request: Invalid configuration
//	429 Too Many Requests: Session limit reached
func (h *Handlers) HandleCreateScan(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCreateScan")

	var req CreateScanRequest
	if !h.bindJSON(c, logger, &req) {
		return
	}

	seq, spec, err := h.buildSpec(req.Elements, req.Algorithm, req.WindowType, req.WindowSize, req.Pattern)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	info, err := h.sessions.Create(seq, spec)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	scanSessions.Set(float64(h.sessions.Len()))

	logger.Info("Scan created", "session_id", info.ID, "algorithm", info.Algorithm, "total", info.Total)
	c.JSON(http.StatusCreated, info)
}

// HandleGetScan handles GET /api/scans/:id.
func (h *Handlers) HandleGetScan(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetScan")

	info, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// HandleAdvanceScan handles POST /api/scans/:id/advance.
//
// Response:
//
//	200 OK: AdvanceResponse
//	404 Not Found: Unknown session
//	409 Conflict: Scan already complete
func (h *Handlers) HandleAdvanceScan(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAdvanceScan")

	id := c.Param("id")
	res, info, err := h.sessions.Advance(id)
	if err != nil {
		if info.ID != "" {
			stepsTotal.WithLabelValues(string(info.Algorithm), "error").Inc()
		}
		h.fail(c, logger.With("session_id", id), err)
		return
	}
	stepsTotal.WithLabelValues(string(info.Algorithm), "ok").Inc()

	c.JSON(http.StatusOK, AdvanceResponse{Step: res, Session: info})
}

// HandleGetScanStep handles GET /api/scans/:id/steps/:index.
//
// Description:
//
//	Computes one step of the session's run without advancing it.
//
// Response:
//
//	200 OK: engine.StepResult
//	400 Bad Request: Index is not a number or past the last step
//	404 Not Found: Unknown session
func (h *Handlers) HandleGetScanStep(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetScanStep")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		logger.Warn("Invalid step index", "index", c.Param("index"))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Step index must be an integer",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	res, err := h.sessions.Step(c.Param("id"), index)
	if err != nil {
		h.fail(c, logger.With("session_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleResetScan handles POST /api/scans/:id/reset.
func (h *Handlers) HandleResetScan(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleResetScan")

	info, err := h.sessions.Reset(c.Param("id"))
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	logger.Debug("Scan reset", "session_id", info.ID)
	c.JSON(http.StatusOK, info)
}

// HandleDeleteScan handles DELETE /api/scans/:id.
func (h *Handlers) HandleDeleteScan(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleDeleteScan")

	if err := h.sessions.Delete(c.Param("id")); err != nil {
		h.fail(c, logger, err)
		return
	}
	scanSessions.Set(float64(h.sessions.Len()))
	c.Status(http.StatusNoContent)
}

// SweepSessions drops sessions idle for longer than ttl.
func (h *Handlers) SweepSessions(ttl time.Duration) int {
	n := h.sessions.Sweep(ttl)
	scanSessions.Set(float64(h.sessions.Len()))
	return n
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
}

// buildSpec caps the request size and resolves the window settings.
func (h *Handlers) buildSpec(seq engine.Sequence, algorithm, windowType string, size int, pattern string) (engine.Sequence, engine.WindowSpec, error) {
	if h.maxElements > 0 && seq.Len() > h.maxElements {
		return seq, engine.WindowSpec{}, fmt.Errorf("%w: %d elements exceeds the limit of %d", engine.ErrInvalidInput, seq.Len(), h.maxElements)
	}
	spec, err := input.ParseSpec(seq, algorithm, windowType, size, pattern)
	return seq, spec, err
}

// bindJSON decodes the request body into req. Element errors from the
// sequence decoder keep their INVALID_INPUT code and message; anything
// else is a malformed body.
func (h *Handlers) bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if errors.Is(err, engine.ErrInvalidInput) {
		h.fail(c, logger, err)
		return false
	}
	logger.Warn("Invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request body",
		Code:  "INVALID_REQUEST",
	})
	return false
}

// fail maps an error to its status and code and writes the response.
func (h *Handlers) fail(c *gin.Context, logger *slog.Logger, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", code)
	}
	c.JSON(status, ErrorResponse{Error: message(err), Code: code})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, engine.ErrOutOfBounds):
		return http.StatusBadRequest, "OUT_OF_BOUNDS"
	case errors.Is(err, engine.ErrEmptyPattern):
		return http.StatusBadRequest, "EMPTY_PATTERN"
	case errors.Is(err, engine.ErrUnsupportedAlgorithm):
		return http.StatusBadRequest, "UNSUPPORTED_ALGORITHM"
	case errors.Is(err, engine.ErrScanComplete):
		return http.StatusConflict, "SCAN_COMPLETE"
	case errors.Is(err, engine.ErrStaleState):
		return http.StatusConflict, "STALE_STATE"
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, session.ErrLimit):
		return http.StatusTooManyRequests, "TOO_MANY_SESSIONS"
	case errors.Is(err, codegen.ErrNotAvailable):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// message strips the package prefix from sentinel errors so clients see
// plain text.
func message(err error) string {
	if errors.Is(err, codegen.ErrNotAvailable) {
		return codegen.ErrNotAvailable.Error()
	}
	msg := err.Error()
	for _, prefix := range []string{"engine: ", "session: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}
