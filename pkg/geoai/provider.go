package geoai

import (
	"context"
	"errors"
)

// ErrMissingCredential means no API key is configured. It is a hard stop:
// callers must surface it instead of falling back to simulated data.
var ErrMissingCredential = errors.New("analysis credential is not configured")

// ErrMalformedResponse means the service answered but the payload could not
// be used. Callers recover by substituting the simulated fallback.
var ErrMalformedResponse = errors.New("analysis response is not a JSON array")

// ImagePart is one encoded thematic map image for a multimodal request.
type ImagePart struct {
	MimeType string
	Data     string // base64 payload
}

// Option allows for optional parameters like Model, Temperature, etc.
type Option func(*Options)

type Options struct {
	Model       string // Override default model
	Temperature float64
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// AnalysisProvider defines the contract for any multimodal reasoning backend.
// It takes ordered image parts plus one instruction block and returns the raw
// structured-text answer; parsing and reconciliation happen outside.
type AnalysisProvider interface {
	IdentifyWorks(ctx context.Context, images []ImagePart, instruction string, options ...Option) (string, error)
}
