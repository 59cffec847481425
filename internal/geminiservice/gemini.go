package geminiservice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"NutriAI/internal/config"
	"github.com/rs/zerolog"
)

// ErrRequestFailed wraps every failure of a model call: missing credential,
// transport error, non-200 status or an unusable response body.
var ErrRequestFailed = errors.New("request failed")

// maxErrorBody bounds how much of a failed response body ends up in an error.
const maxErrorBody = 2048

// --- Structs for Gemini API Request/Response ---

type GeminiPayload struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries base64-encoded media next to the prompt text.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// ModelClient is the boundary to the hosted generative model. Each method
// issues exactly one call and returns the generated text.
type ModelClient interface {
	AnalyzeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewClient builds a Client from the startup configuration. A zero
// RequestTimeout leaves the HTTP client without a timeout.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   fmt.Sprintf("%s/v1beta/models/%s:generateContent", cfg.BaseURL, cfg.Model),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
	}
}

// AnalyzeImage sends the prompt together with one inline image.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	parts := []GeminiPart{
		{Text: prompt},
		{InlineData: &InlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}
	return c.generate(ctx, parts)
}

// GenerateText sends a text-only prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []GeminiPart{{Text: prompt}})
}

// generate handles the actual HTTP request to the Gemini API.
func (c *Client) generate(ctx context.Context, parts []GeminiPart) (string, error) {
	if c.apiKey == "" {
		c.logger.Error().Msg("GOOGLE_API_KEY is not set, cannot call Gemini")
		return "", fmt.Errorf("%w: API key is not configured", ErrRequestFailed)
	}

	payload := GeminiPayload{
		Contents: []GeminiContent{{Role: "user", Parts: parts}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal payload: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug().Int("payload_bytes", len(payloadBytes)).Msg("Calling Gemini API...")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn().Int("status", resp.StatusCode).Msg("Gemini API returned non-200 status")
		return "", fmt.Errorf("%w: API returned non-200 status: %s, Body: %s",
			ErrRequestFailed, resp.Status, strings.TrimSpace(string(body)))
	}

	var geminiResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrRequestFailed, err)
	}

	if len(geminiResp.Candidates) == 0 {
		if geminiResp.PromptFeedback != nil && geminiResp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", ErrRequestFailed, geminiResp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content found in Gemini response", ErrRequestFailed)
	}

	// The text is the concatenation of every part of the first candidate,
	// returned untouched.
	var sb strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
