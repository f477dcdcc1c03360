package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// Default model names. Overridable via config for when Google rotates them.
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultVideoModel = "veo-3.1-fast-generate-preview"
)

// videoPollInterval is the wait between long-running video operation polls.
const videoPollInterval = 5 * time.Second

// GeminiSource implements Source against the Gemini REST API. Each Generate
// call is two requests: one structured text generation, then one media
// generation (image predict, or video long-running operation).
type GeminiSource struct {
	apiKey     string
	textModel  string
	imageModel string
	videoModel string
	endpoint   string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewGeminiSource creates a Gemini-backed content source. Empty model names
// fall back to the defaults.
func NewGeminiSource(apiKey, textModel, imageModel, videoModel string) *GeminiSource {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if imageModel == "" {
		imageModel = DefaultImageModel
	}
	if videoModel == "" {
		videoModel = DefaultVideoModel
	}
	return &GeminiSource{
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
		videoModel: videoModel,
		endpoint:   "https://generativelanguage.googleapis.com/v1beta",
		client:     &http.Client{Timeout: 120 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

func (g *GeminiSource) Name() string {
	return "gemini"
}

func (g *GeminiSource) Available() bool {
	return g.apiKey != ""
}

// dripSchema is the structured payload the text model is asked to return.
type dripSchema struct {
	Fact         string `json:"fact"`
	FunnyCaption string `json:"funnyCaption"`
	MediaType    string `json:"mediaType"`
	MediaPrompt  string `json:"mediaPrompt"`
}

// Generate produces one drip: fact + caption from the text model, then media
// from the image or video model depending on what the text model chose.
func (g *GeminiSource) Generate(ctx context.Context, prefs []string, region string) (model.Drip, error) {
	if !g.Available() {
		return model.Drip{}, fmt.Errorf("gemini source not configured")
	}

	schema, err := g.generateSchema(ctx, prefs, region)
	if err != nil {
		return model.Drip{}, err
	}

	var mediaURL string
	kind := model.MediaKind(schema.MediaType)
	switch kind {
	case model.MediaVideo:
		mediaURL, err = g.generateVideo(ctx, schema.MediaPrompt)
	default:
		kind = model.MediaImage
		mediaURL, err = g.generateImage(ctx, schema.MediaPrompt)
	}
	if err != nil {
		return model.Drip{}, err
	}

	return model.Drip{
		ID:           model.NewDripID(),
		Fact:         schema.Fact,
		FunnyCaption: schema.FunnyCaption,
		MediaURL:     mediaURL,
		MediaKind:    kind,
	}, nil
}

// generateSchema asks the text model for a structured fact/caption/media plan.
func (g *GeminiSource) generateSchema(ctx context.Context, prefs []string, region string) (dripSchema, error) {
	topicLine := "Pick a random interesting topic."
	if len(prefs) > 0 {
		topicLine = "The fact must be from one of the following topics: " + strings.Join(prefs, ", ") + "."
	}

	prompt := fmt.Sprintf(`You are a witty and culturally-aware AI that creates 'knowledge memes' for a global audience with a local touch.
Provide a fascinating, obscure, or surprising fact and present it humorously.

The user is from %s. Tailor the fact, and especially the humor, to that region.
Topic preference: %s
The caption should read like a modern, viral internet meme: short, punchy, slightly absurd.
Use mediaType "video" roughly a quarter of the time for GIF-style reactions, otherwise "image".

Respond with a JSON object with keys: fact, funnyCaption, mediaType ("image" or "video"), mediaPrompt (a creative prompt for the media model). Do not repeat facts.`, region, topicLine)

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"temperature":      1.0,
		},
	}

	respBody, err := g.post(ctx, fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, g.textModel), body)
	if err != nil {
		return dripSchema{}, err
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return dripSchema{}, fmt.Errorf("parse text response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return dripSchema{}, fmt.Errorf("text model returned no candidates")
	}

	var schema dripSchema
	raw := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return dripSchema{}, fmt.Errorf("parse drip schema: %w", err)
	}
	if schema.Fact == "" || schema.FunnyCaption == "" || schema.MediaPrompt == "" || schema.MediaType == "" {
		return dripSchema{}, fmt.Errorf("incomplete drip schema from text model")
	}
	return schema, nil
}

// generateImage returns an inline data URL for a generated JPEG.
func (g *GeminiSource) generateImage(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"instances": []map[string]string{{"prompt": prompt}},
		"parameters": map[string]any{
			"sampleCount":    1,
			"aspectRatio":    "9:16",
			"outputMimeType": "image/jpeg",
		},
	}

	respBody, err := g.post(ctx, fmt.Sprintf("%s/models/%s:predict", g.endpoint, g.imageModel), body)
	if err != nil {
		return "", err
	}

	var result struct {
		Predictions []struct {
			BytesBase64Encoded string `json:"bytesBase64Encoded"`
		} `json:"predictions"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse image response: %w", err)
	}
	if len(result.Predictions) == 0 || result.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("image model returned no image")
	}
	return "data:image/jpeg;base64," + result.Predictions[0].BytesBase64Encoded, nil
}

// generateVideo starts a long-running video operation and polls until done.
// Returns the streamable URI of the generated clip.
func (g *GeminiSource) generateVideo(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"instances": []map[string]string{{"prompt": prompt}},
		"parameters": map[string]any{
			"numberOfVideos": 1,
			"resolution":     "720p",
			"aspectRatio":    "9:16",
		},
	}

	respBody, err := g.post(ctx, fmt.Sprintf("%s/models/%s:predictLongRunning", g.endpoint, g.videoModel), body)
	if err != nil {
		return "", err
	}

	var op struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(respBody, &op); err != nil {
		return "", fmt.Errorf("parse operation response: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("video model returned no operation name")
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(videoPollInterval):
		}

		pollBody, err := g.get(ctx, fmt.Sprintf("%s/%s", g.endpoint, op.Name))
		if err != nil {
			return "", err
		}

		var status struct {
			Done     bool `json:"done"`
			Response struct {
				GenerateVideoResponse struct {
					GeneratedSamples []struct {
						Video struct {
							URI string `json:"uri"`
						} `json:"video"`
					} `json:"generatedSamples"`
				} `json:"generateVideoResponse"`
			} `json:"response"`
		}
		if err := json.Unmarshal(pollBody, &status); err != nil {
			return "", fmt.Errorf("parse operation status: %w", err)
		}
		if !status.Done {
			continue
		}

		samples := status.Response.GenerateVideoResponse.GeneratedSamples
		if len(samples) == 0 || samples[0].Video.URI == "" {
			return "", fmt.Errorf("video operation finished without a video URI")
		}
		return samples[0].Video.URI, nil
	}
}

// Explain produces a single-shot explanation of a fact. Callers substitute
// Apology on error; failures here never cascade into queue handling.
func (g *GeminiSource) Explain(ctx context.Context, fact string, mode ExplainMode) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("gemini source not configured")
	}

	var prompt string
	if mode == ExplainDeep {
		prompt = fmt.Sprintf("A user wants a detailed explanation of a fact. Go deeper into the following fact. Provide more context, history, or related interesting details. Aim for a few well-structured paragraphs.\n\nFact: %q", fact)
	} else {
		prompt = fmt.Sprintf("A user wants a simple explanation of a fact. Explain the following fact in one or two short paragraphs, as if you're talking to a curious teenager. Keep it clear, concise, and engaging.\n\nFact: %q", fact)
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	respBody, err := g.post(ctx, fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, g.textModel), body)
	if err != nil {
		logging.Warn("explanation request failed", "mode", mode, "error", err)
		return "", err
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("text model returned no explanation")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// post sends a rate-limited JSON POST and returns the response body.
func (g *GeminiSource) post(ctx context.Context, url string, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	return g.do(req)
}

// get sends a rate-limited GET and returns the response body.
func (g *GeminiSource) get(ctx context.Context, url string) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	return g.do(req)
}

func (g *GeminiSource) do(req *http.Request) ([]byte, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		logging.Error("gemini API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
