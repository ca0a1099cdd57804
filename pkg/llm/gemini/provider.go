package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/pkg/llm"
)

type GeminiProvider struct {
	apiKey    string
	modelName string
	client    *http.Client
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, apperrors.Configuration("generation provider API key is not set")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		apiKey:    apiKey,
		modelName: modelName,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// --- Request/Response structs (internal to this package) ---

type chatPart struct {
	Text string `json:"text"`
}

type chatContent struct {
	Parts []chatPart `json:"parts"`
	Role  string     `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type chatRequest struct {
	Contents         []chatContent     `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type chatCandidate struct {
	Content chatContent `json:"content"`
}

type chatResponse struct {
	Candidates []chatCandidate `json:"candidates"`
}

func (p *GeminiProvider) buildRequest(prompt string, opts ...llm.Option) ([]byte, string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	payload := chatRequest{
		Contents: []chatContent{
			{Parts: []chatPart{{Text: prompt}}, Role: "user"},
		},
	}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		payload.GenerationConfig = &generationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return payloadJson, model, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	payloadJson, model, err := p.buildRequest(prompt, opts...)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", apperrors.Generation(err)
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperrors.Generation(err)
	}

	if res.StatusCode != http.StatusOK {
		return "", apperrors.Generation(
			fmt.Errorf("status %d, body %s", res.StatusCode, string(resBytes)),
		)
	}

	var chatRes chatResponse
	if err := json.Unmarshal(resBytes, &chatRes); err != nil {
		return "", apperrors.Generation(err)
	}
	if len(chatRes.Candidates) == 0 || len(chatRes.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.Generation(fmt.Errorf("empty candidates in response"))
	}

	return chatRes.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateStream calls streamGenerateContent with alt=sse and forwards each
// candidate fragment as it arrives. The returned channel closes when the
// upstream stream ends, errors (after one error chunk), or ctx is cancelled.
func (p *GeminiProvider) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	payloadJson, model, err := p.buildRequest(prompt, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:streamGenerateContent?alt=sse",
		model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.Generation(err)
	}

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, apperrors.Generation(
			fmt.Errorf("status %d, body %s", res.StatusCode, string(body)),
		)
	}

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		defer res.Body.Close()

		scanner := bufio.NewScanner(res.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")

			var chatRes chatResponse
			if err := json.Unmarshal([]byte(data), &chatRes); err != nil {
				continue // keep-alive or non-JSON frame
			}
			if len(chatRes.Candidates) == 0 || len(chatRes.Candidates[0].Content.Parts) == 0 {
				continue
			}

			text := chatRes.Candidates[0].Content.Parts[0].Text
			select {
			case out <- llm.StreamChunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case out <- llm.StreamChunk{Err: apperrors.Generation(err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}
