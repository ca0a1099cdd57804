package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"coachsite-be/internal/pkg/apperrors"
)

const (
	taskTypeQuery    = "RETRIEVAL_QUERY"
	taskTypeDocument = "RETRIEVAL_DOCUMENT"

	defaultMaxConcurrency = 4
)

type GeminiProvider struct {
	apiKey         string
	modelName      string
	maxConcurrency int
	client         *http.Client
}

var _ Provider = &GeminiProvider{}

// NewGeminiProvider fails fast on a missing API key so misconfiguration is a
// construction-time error, never a mid-pipeline one.
func NewGeminiProvider(apiKey, modelName string, maxConcurrency int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, apperrors.Configuration("embedding provider API key is not set")
	}
	if modelName == "" {
		modelName = "text-embedding-004"
	}
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	return &GeminiProvider{
		apiKey:         apiKey,
		modelName:      modelName,
		maxConcurrency: maxConcurrency,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type embedRequestPart struct {
	Text string `json:"text"`
}

type embedRequestContent struct {
	Parts []embedRequestPart `json:"parts"`
}

type embedRequest struct {
	Model    string              `json:"model"`
	Content  embedRequestContent `json:"content"`
	TaskType string              `json:"taskType,omitempty"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.embed(ctx, text, taskTypeQuery)
}

// EmbedBatch fans out one request per chunk, bounded by maxConcurrency to
// stay under provider rate limits on large documents. Result order always
// matches input order.
func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	errs := make(chan error, len(texts))
	sem := make(chan struct{}, p.maxConcurrency)

	for i, text := range texts {
		sem <- struct{}{}
		go func(idx int, chunk string) {
			defer func() { <-sem }()
			vec, err := p.embed(ctx, chunk, taskTypeDocument)
			if err != nil {
				errs <- fmt.Errorf("chunk %d: %w", idx, err)
				return
			}
			vectors[idx] = vec
			errs <- nil
		}(i, text)
	}

	for range texts {
		if err := <-errs; err != nil {
			return nil, err
		}
	}

	return vectors, nil
}

func (p *GeminiProvider) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	payload := embedRequest{
		Model: "models/" + p.modelName,
		Content: embedRequestContent{
			Parts: []embedRequestPart{{Text: text}},
		},
		TaskType: taskType,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:embedContent",
		p.modelName,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("embedding service unreachable", err)
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("embedding service read failed", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, apperrors.ServiceUnavailable(
			"embedding service error",
			fmt.Errorf("status %d, body %s", res.StatusCode, string(resBytes)),
		)
	}

	var embRes embedResponse
	if err := json.Unmarshal(resBytes, &embRes); err != nil {
		return nil, apperrors.ServiceUnavailable("embedding service returned malformed response", err)
	}

	return embRes.Embedding.Values, nil
}
