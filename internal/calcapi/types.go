package calcapi

import (
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"
)

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for binary operations. Result is null
// when the operation has no finite value; Display then holds the sentinel text.
type CalcResponse struct {
	Operation string   `json:"operation"`
	A         float64  `json:"a"`
	B         float64  `json:"b"`
	Result    *float64 `json:"result"`
	Display   string   `json:"display"`
}

// KeysRequest is the JSON body for POST /calculator/evaluate and
// POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,max=256,dive,required,max=16"`
}

// KeysResponse reports the display after every key and at the end.
type KeysResponse struct {
	SessionID string         `json:"session_id,omitempty"`
	Steps     []session.Step `json:"steps"`
	Display   string         `json:"display"`
	Phase     string         `json:"phase"`
}

// SessionResponse describes a stored session.
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Display   string           `json:"display"`
	Phase     string           `json:"phase,omitempty"`
	State     calculator.State `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
