// Package llm is a minimal client for OpenAI-compatible chat completion
// APIs. It performs single requests and classifies failures; retry policy
// belongs to the caller.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client represents a chat completion API client.
// Thread-safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new completion client with the given configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Client{
		config:     config,
		baseURL:    config.APIURL,
		httpClient: makeHTTPClient(config.Proxy, time.Duration(config.Timeout)*time.Second),
	}, nil
}

// makeHTTPClient builds an HTTP client honoring an explicit proxy URL,
// falling back to HTTP_PROXY/HTTPS_PROXY from the environment.
func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ChatCompletion sends one chat completion request and returns the parsed
// response. Failures come back as *APIError so callers can decide between
// retrying and giving up via APIError.Transient.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (*ChatResponse, error) {
	request := ChatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}
	return c.makeRequest(ctx, "/chat/completions", request)
}

// Complete sends a system+user message pair and returns the assistant's
// text content.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	response, err := c.ChatCompletion(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", &APIError{Cause: fmt.Errorf("no choices in response")}
	}
	return response.Choices[0].Message.Content, nil
}

func (c *Client) makeRequest(ctx context.Context, path string, payload any) (*ChatResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.config.GetHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Cause: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Cause: err}
	}

	var chatResponse ChatResponse
	if err := json.Unmarshal(responseBody, &chatResponse); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Non-JSON error body, e.g. a gateway page.
			return nil, &APIError{StatusCode: resp.StatusCode,
				Cause: fmt.Errorf("%s", string(responseBody))}
		}
		return nil, &APIError{StatusCode: resp.StatusCode,
			Cause: fmt.Errorf("failed to parse response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: chatResponse.Error}
	}
	if chatResponse.Error != nil && chatResponse.Error.Message != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: chatResponse.Error}
	}

	return &chatResponse, nil
}
