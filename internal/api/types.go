package api

import (
	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/session"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidateRequest is the body of POST /api/validate_input.
type ValidateRequest struct {
	Input string `json:"input"`
	Type  string `json:"type"`
}

// ValidateResponse reports whether the input parsed. Index names the
// failing element when one is to blame.
type ValidateResponse struct {
	Valid  bool             `json:"valid"`
	Parsed *engine.Sequence `json:"parsed,omitempty"`
	Error  string           `json:"error,omitempty"`
	Index  *int             `json:"index,omitempty"`
}

// CalculateRequest is the body of POST /api/calculate_step.
type CalculateRequest struct {
	Elements    engine.Sequence `json:"elements"`
	WindowStart int             `json:"window_start"`
	WindowSize  int             `json:"window_size"`
	Algorithm   string          `json:"algorithm"`
	Pattern     string          `json:"pattern"`
}

// GenerateRequest is the body of POST /api/generate_code.
type GenerateRequest struct {
	Algorithm  string `json:"algorithm"`
	WindowType string `json:"window_type"`
	WindowSize int    `json:"window_size" binding:"min=0,max=1000"`
	Language   string `json:"language"`
}

// GenerateResponse carries generated source code.
type GenerateResponse struct {
	Success    bool              `json:"success"`
	Code       string            `json:"code"`
	Language   codegen.Language  `json:"language"`
	Algorithm  engine.Algorithm  `json:"algorithm"`
	WindowType engine.WindowType `json:"window_type"`
}

// CreateScanRequest is the body of POST /api/scans.
type CreateScanRequest struct {
	Elements   engine.Sequence `json:"elements"`
	Algorithm  string          `json:"algorithm" binding:"required"`
	WindowType string          `json:"window_type"`
	WindowSize int             `json:"window_size"`
	Pattern    string          `json:"pattern"`
}

// AdvanceResponse is one scan step plus the session position after it.
type AdvanceResponse struct {
	Step    engine.StepResult `json:"step"`
	Session session.Info      `json:"session"`
}
