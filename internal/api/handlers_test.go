package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/session"
)

func init() {
	// Set Gin to test mode to reduce noise
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T, maxSessions int) *gin.Engine {
	t.Helper()
	gen, err := codegen.New()
	require.NoError(t, err)
	return NewRouter(NewHandlers(gen, session.NewStore(maxSessions), 100))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHandlers_HandleHealth(t *testing.T) {
	router := setupTestRouter(t, 10)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandlers_RequestIDIsEchoed(t *testing.T) {
	router := setupTestRouter(t, 10)
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHandlers_HandleValidateInput(t *testing.T) {
	router := setupTestRouter(t, 10)

	tests := []struct {
		name      string
		body      ValidateRequest
		valid     bool
		wantError string
		wantIndex *int
	}{
		{"Array", ValidateRequest{Input: "1, 2, 3", Type: "array"}, true, "", nil},
		{"String", ValidateRequest{Input: "abc", Type: "string"}, true, "", nil},
		{"Empty", ValidateRequest{Input: "  ", Type: "array"}, false, "Input cannot be empty", nil},
		{"BadNumber", ValidateRequest{Input: "1,x,3", Type: "array"}, false, "Please enter valid numbers separated by commas", intPtr(1)},
		{"BadType", ValidateRequest{Input: "1", Type: "matrix"}, false, "Invalid input type", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/validate_input", tt.body)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[ValidateResponse](t, w)
			assert.Equal(t, tt.valid, resp.Valid)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantIndex, resp.Index)
		})
	}
}

func TestHandlers_HandleCalculateStep(t *testing.T) {
	router := setupTestRouter(t, 10)

	w := doJSON(t, router, http.MethodPost, "/api/calculate_step", map[string]any{
		"elements":     []int{1, 2, 3, 4, 5},
		"window_start": 1,
		"window_size":  3,
		"algorithm":    "sum",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Equal(t, float64(9), resp["result"])
	assert.Equal(t, []any{float64(2), float64(3), float64(4)}, resp["window"])
	assert.Equal(t, float64(1), resp["window_start"])
	assert.Equal(t, float64(3), resp["window_end"])
	assert.NotEmpty(t, resp["description"])
}

func TestHandlers_HandleCalculateStep_Permutation(t *testing.T) {
	router := setupTestRouter(t, 10)

	w := doJSON(t, router, http.MethodPost, "/api/calculate_step", map[string]any{
		"elements":     strings.Split("eidbaooo", ""),
		"window_start": 3,
		"algorithm":    "permutation_in_string",
		"pattern":      "ab",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Equal(t, true, resp["result"])
	assert.Equal(t, []any{"b", "a"}, resp["window"])
}

func TestHandlers_HandleCalculateStep_Errors(t *testing.T) {
	router := setupTestRouter(t, 10)

	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"Malformed", `{"elements": [1, `, http.StatusBadRequest, "INVALID_REQUEST"},
		{"Empty", map[string]any{"elements": []int{}, "window_size": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"ZeroSize", map[string]any{"elements": []int{1, 2}, "window_size": 0}, http.StatusBadRequest, "INVALID_INPUT"},
		{"OutOfBounds", map[string]any{"elements": []int{1, 2, 3}, "window_start": 2, "window_size": 2}, http.StatusBadRequest, "OUT_OF_BOUNDS"},
		{"UnknownAlgorithm", map[string]any{"elements": []int{1, 2}, "window_size": 1, "algorithm": "median"}, http.StatusBadRequest, "UNSUPPORTED_ALGORITHM"},
		{"EmptyPattern", map[string]any{"elements": []string{"a", "b"}, "algorithm": "permutation-match"}, http.StatusBadRequest, "EMPTY_PATTERN"},
		{"TooLarge", map[string]any{"elements": make([]int, 101), "window_size": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"HugeStart", `{"elements": [1, 2, 3], "window_start": 9223372036854775807, "window_size": 1}`, http.StatusBadRequest, "OUT_OF_BOUNDS"},
		{"HugeSize", map[string]any{"elements": []int{1, 2, 3}, "window_start": 1, "window_size": math.MaxInt}, http.StatusBadRequest, "OUT_OF_BOUNDS"},
		{"HugePermutationStart", map[string]any{"elements": []string{"a", "b"}, "window_start": math.MaxInt, "algorithm": "permutation-match", "pattern": "a"}, http.StatusBadRequest, "OUT_OF_BOUNDS"},
		{"NullElement", `{"elements": [1, null, 3], "window_size": 2}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"BoolElement", `{"elements": [1, true], "window_size": 1}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"FractionElement", `{"elements": [1.5, 2], "window_size": 1}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/calculate_step", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.wantErr, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandlers_HandleCalculateStep_NamesBadElement(t *testing.T) {
	router := setupTestRouter(t, 10)

	w := doJSON(t, router, http.MethodPost, "/api/calculate_step", `{"elements": [1, null, 3], "window_size": 2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[ErrorResponse](t, w)
	assert.Contains(t, resp.Error, "element 1 must be an integer")

	w = doJSON(t, router, http.MethodPost, "/api/scans", `{"elements": [null], "algorithm": "sum", "window_size": 1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode[ErrorResponse](t, w).Code)
}

func TestHandlers_HandleGenerateCode(t *testing.T) {
	router := setupTestRouter(t, 10)

	w := doJSON(t, router, http.MethodPost, "/api/generate_code", GenerateRequest{
		Algorithm:  "sum",
		Language:   "python",
		WindowSize: 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "fixed", resp["window_type"])
	assert.Contains(t, resp["code"], "k=4")

	w = doJSON(t, router, http.MethodPost, "/api/generate_code", GenerateRequest{
		Algorithm: "longest_substring",
		Language:  "js",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "variable", decode[map[string]any](t, w)["window_type"])

	w = doJSON(t, router, http.MethodPost, "/api/generate_code", GenerateRequest{
		Algorithm:  "min",
		WindowType: "variable",
		Language:   "python",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode[map[string]any](t, w)["code"], "minimum_window_substring")
}

func TestHandlers_HandleGenerateCode_NotAvailable(t *testing.T) {
	router := setupTestRouter(t, 10)

	for _, body := range []GenerateRequest{
		{Algorithm: "max", Language: "cpp"},
		{Algorithm: "sum", Language: "cobol"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/generate_code", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Equal(t, "TEMPLATE_NOT_FOUND", resp.Code)
		assert.Equal(t, "implementation not available for this combination", resp.Error)
	}
}

func TestHandlers_HandleListCombinations(t *testing.T) {
	router := setupTestRouter(t, 10)
	w := doJSON(t, router, http.MethodGet, "/api/generate_code/combinations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string][]codegen.Combination](t, w)
	assert.NotEmpty(t, resp["combinations"])
}

func TestHandlers_ScanLifecycle(t *testing.T) {
	router := setupTestRouter(t, 10)

	w := doJSON(t, router, http.MethodPost, "/api/scans", map[string]any{
		"elements":  strings.Split("abcabcbb", ""),
		"algorithm": "longest-unique-substring",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	info := decode[session.Info](t, w)
	assert.Equal(t, 8, info.Total)
	base := "/api/scans/" + info.ID

	var last AdvanceResponse
	for i := 0; i < info.Total; i++ {
		w = doJSON(t, router, http.MethodPost, base+"/advance", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		last = decode[AdvanceResponse](t, w)
		assert.Equal(t, i, last.Step.Index)
	}
	assert.True(t, last.Session.Done)
	require.NotNil(t, last.Step.Best)
	assert.Equal(t, 3, last.Step.Best.Len())

	w = doJSON(t, router, http.MethodPost, base+"/advance", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SCAN_COMPLETE", decode[ErrorResponse](t, w).Code)

	w = doJSON(t, router, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[session.Info](t, w).Position)

	w = doJSON(t, router, http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[AdvanceResponse](t, w).Step.Index)

	w = doJSON(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", decode[ErrorResponse](t, w).Code)
}

func TestHandlers_HandleGetScanStep(t *testing.T) {
	router := setupTestRouter(t, 10)

	w := doJSON(t, router, http.MethodPost, "/api/scans", map[string]any{
		"elements":    []int{4, 1, 7, 2},
		"algorithm":   "sum",
		"window_size": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	base := "/api/scans/" + decode[session.Info](t, w).ID

	w = doJSON(t, router, http.MethodGet, base+"/steps/2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	step := decode[map[string]any](t, w)
	assert.Equal(t, float64(9), step["result"])
	assert.Equal(t, float64(2), step["index"])

	w = doJSON(t, router, http.MethodGet, base, nil)
	assert.Equal(t, float64(0), decode[map[string]any](t, w)["position"])

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{"PastEnd", base + "/steps/3", http.StatusBadRequest, "OUT_OF_BOUNDS"},
		{"Negative", base + "/steps/-1", http.StatusBadRequest, "OUT_OF_BOUNDS"},
		{"NotANumber", base + "/steps/two", http.StatusBadRequest, "INVALID_REQUEST"},
		{"UnknownSession", "/api/scans/missing/steps/0", http.StatusNotFound, "SESSION_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decode[ErrorResponse](t, w).Code)
		})
	}
}

func TestHandlers_ScanErrors(t *testing.T) {
	router := setupTestRouter(t, 1)

	w := doJSON(t, router, http.MethodPost, "/api/scans", map[string]any{"elements": []int{1, 2}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[ErrorResponse](t, w).Code)

	w = doJSON(t, router, http.MethodPost, "/api/scans", map[string]any{
		"elements":    []int{1, 2, 3},
		"algorithm":   "max",
		"window_type": "variable",
		"window_size": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_ALGORITHM", decode[ErrorResponse](t, w).Code)

	body := map[string]any{"elements": []int{1, 2, 3}, "algorithm": "max", "window_size": 2}
	w = doJSON(t, router, http.MethodPost, "/api/scans", body)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/scans", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/scans/nope/advance", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_Metrics(t *testing.T) {
	router := setupTestRouter(t, 10)
	doJSON(t, router, http.MethodPost, "/api/calculate_step", map[string]any{
		"elements": []int{1, 2}, "window_size": 1,
	})

	w := doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slidewin_steps_total")
}

func intPtr(i int) *int { return &i }
