package llm

import (
	"context"
)

// StreamChunk is one fragment of a streamed generation. Err is non-nil on a
// mid-stream upstream failure; fragments already delivered are not retracted.
type StreamChunk struct {
	Text string
	Err  error
}

// Option allows optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // override the provider default
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider is the contract for a text-generation backend.
type Provider interface {
	// Generate returns the full response for a prompt.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateStream returns a lazy, finite channel of fragments in
	// generation order. The channel is closed on completion, upstream error
	// (after an error chunk), or context cancellation. It is not restartable.
	GenerateStream(ctx context.Context, prompt string, options ...Option) (<-chan StreamChunk, error)
}
