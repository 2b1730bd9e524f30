package gcv

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pantrify/internal/annotator"
	"pantrify/internal/config"
	"pantrify/internal/port"
)

const (
	defaultBaseURL = "https://vision.googleapis.com"
	annotatePath   = "/v1/images:annotate"
	maxResults     = 20
)

// Annotator implements port.ImageAnnotator using the Google Cloud Vision REST API.
type Annotator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewAnnotator creates a Cloud Vision annotator from the vision config.
func NewAnnotator(cfg *config.VisionConfig) *Annotator {
	return newAnnotator(cfg, cfg.Endpoint)
}

// NewAnnotatorWithEndpoint creates an annotator pointing at a custom base URL (for testing).
func NewAnnotatorWithEndpoint(cfg *config.VisionConfig, endpoint string) *Annotator {
	return newAnnotator(cfg, endpoint)
}

// Factory adapts NewAnnotator to annotator.ProviderFactory.
func Factory(cfg *config.VisionConfig) (port.ImageAnnotator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gcv: vision.api_key is required")
	}
	return NewAnnotator(cfg), nil
}

func newAnnotator(cfg *config.VisionConfig, endpoint string) *Annotator {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	return &Annotator{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(endpoint, "/") + annotatePath,
		client:   &http.Client{Timeout: timeout},
	}
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type imageRequest struct {
	Image struct {
		Content string `json:"content"`
	} `json:"image"`
	Features []feature `json:"features"`
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

// annotateResponse models the subset of the images:annotate response we consume.
type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
		LocalizedObjectAnnotations []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"localizedObjectAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Annotate sends one request asking for both label detection and object
// localization of the image.
func (a *Annotator) Annotate(ctx context.Context, input port.AnnotateInput) (*port.Annotation, error) {
	if len(input.ImageBytes) == 0 {
		return nil, fmt.Errorf("gcv: empty image")
	}

	var img imageRequest
	img.Image.Content = base64.StdEncoding.EncodeToString(input.ImageBytes)
	img.Features = []feature{
		{Type: "LABEL_DETECTION", MaxResults: maxResults},
		{Type: "OBJECT_LOCALIZATION", MaxResults: maxResults},
	}

	bodyBytes, err := json.Marshal(annotateRequest{Requests: []imageRequest{img}})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := annotator.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, annotator.NewRateLimitError("gcv", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (*port.Annotation, error) {
	var resp annotateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("empty response from vision API")
	}

	r := resp.Responses[0]
	if r.Error != nil && (r.Error.Code != 0 || r.Error.Message != "") {
		return nil, fmt.Errorf("vision API annotate error (code %d): %s", r.Error.Code, r.Error.Message)
	}

	out := &port.Annotation{
		Labels:   make([]port.Label, 0, len(r.LabelAnnotations)),
		Objects:  make([]port.LocalizedObject, 0, len(r.LocalizedObjectAnnotations)),
		Provider: "gcv",
	}
	for _, l := range r.LabelAnnotations {
		out.Labels = append(out.Labels, port.Label{Description: l.Description, Score: l.Score})
	}
	for _, o := range r.LocalizedObjectAnnotations {
		out.Objects = append(out.Objects, port.LocalizedObject{Name: o.Name, Score: o.Score})
	}
	return out, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
