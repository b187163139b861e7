package llm

import (
	"fmt"
)

// Message represents a chat message.
// Role is "system", "user", or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat completion request.
// Compatible with the OpenAI API format.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse represents a chat completion response.
// Compatible with the OpenAI API format.
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
	Error   *Error   `json:"error,omitempty"`
}

// Choice represents a completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Error is the error object providers embed in response bodies.
type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("LLM API error: %s (type: %s, code: %s)", e.Message, e.Type, e.Code)
}

// APIError is a failed completion request. StatusCode is 0 when the request
// never reached the server (network failure, timeout).
type APIError struct {
	StatusCode int
	Err        *Error // provider error body when one was returned
	Cause      error  // transport-level cause when the request did not complete
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("completion request failed with status %d: %v", e.StatusCode, e.Err)
	case e.Cause != nil:
		return fmt.Sprintf("completion request failed: %v", e.Cause)
	default:
		return fmt.Sprintf("completion request failed with status %d", e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Cause
}

// Transient reports whether retrying the same request can plausibly
// succeed: rate limits, server-side failures, and requests that never got a
// response. Authentication and invalid-request failures are not transient.
func (e *APIError) Transient() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}
