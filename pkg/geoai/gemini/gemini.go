package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"yuktadhara-be/pkg/geoai"
)

const DefaultModel = "gemini-2.5-flash"

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiContent struct {
	Parts []*GeminiPart `json:"parts"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

type GeminiRequest struct {
	Contents         []*GeminiContent        `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content"`
}

type GeminiResponse struct {
	Candidates []*GeminiCandidate `json:"candidates"`
}

// Provider calls the Gemini generateContent REST endpoint with multimodal
// inline-data parts. Implements geoai.AnalysisProvider.
type Provider struct {
	apiKey string
	model  string
	client *http.Client
}

// NewProvider builds a Gemini provider. The timeout bounds the whole call;
// there is no retry, a failed call is the caller's fallback trigger.
func NewProvider(apiKey, model string, timeout time.Duration) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *Provider) IdentifyWorks(
	ctx context.Context,
	images []geoai.ImagePart,
	instruction string,
	options ...geoai.Option,
) (string, error) {
	if p.apiKey == "" {
		return "", geoai.ErrMissingCredential
	}

	opts := geoai.Options{Model: p.model}
	for _, o := range options {
		o(&opts)
	}

	// Image parts first, in caller order, then the instruction block.
	parts := make([]*GeminiPart, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, &GeminiPart{
			InlineData: &GeminiInlineData{
				MimeType: img.MimeType,
				Data:     img.Data,
			},
		})
	}
	parts = append(parts, &GeminiPart{Text: instruction})

	genConfig := &GeminiGenerationConfig{
		ResponseMimeType: "application/json",
	}
	if opts.Temperature != 0 {
		genConfig.Temperature = &opts.Temperature
	}

	payload := GeminiRequest{
		Contents:         []*GeminiContent{{Parts: parts}},
		GenerationConfig: genConfig,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		opts.Model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in gemini response")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
