package dto

import "time"

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// StreamFrame is one SSE data payload carrying a text fragment.
type StreamFrame struct {
	Text string `json:"text"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError carries usage details for the 429 response.
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily chat limit exceeded"
}

type LimitExceededData struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
