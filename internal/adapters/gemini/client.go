package gemini

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

	"matzip_radar/internal/adapters/observability"
	"matzip_radar/internal/domain"
)

const (
	embedModel    = "text-embedding-004"
	generateModel = "gemini-2.0-flash"

	// batchEmbedContents accepts at most 100 requests per call.
	embedBatchLimit = 100
)

// Client speaks to the Generative Language API: batch text embeddings for the
// semantic filter and free-form generation for review analysis. Safe for
// concurrent use; constructed once at process start.
type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		hc:   &http.Client{Timeout: 30 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type embedRequestItem struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

type batchEmbedRequest struct {
	Requests []embedRequestItem `json:"requests"`
}

type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
}

// Embed encodes texts into fixed-dimension vectors, splitting the input into
// API-sized batches. Returns domain.ErrNotConfigured when no API key is set.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if c.key == "" {
		return nil, domain.ErrNotConfigured
	}
	if len(texts) == 0 {
		return nil, nil
	}

	url := fmt.Sprintf("%s/models/%s:batchEmbedContents", c.base, embedModel)
	vecs := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchLimit {
		end := start + embedBatchLimit
		if end > len(texts) {
			end = len(texts)
		}
		chunk := texts[start:end]

		reqBody := batchEmbedRequest{Requests: make([]embedRequestItem, len(chunk))}
		for i, t := range chunk {
			reqBody.Requests[i] = embedRequestItem{
				Model:   "models/" + embedModel,
				Content: content{Parts: []part{{Text: t}}},
			}
		}

		var out batchEmbedResponse
		if err := c.post(ctx, "batchEmbedContents", url, reqBody, &out); err != nil {
			return nil, err
		}
		if len(out.Embeddings) != len(chunk) {
			return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(chunk), len(out.Embeddings))
		}
		for _, e := range out.Embeddings {
			vecs = append(vecs, e.Values)
		}
	}
	return vecs, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends one prompt and returns the concatenated text parts of the
// first candidate. Returns domain.ErrNotConfigured when no API key is set.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.key == "" {
		return "", domain.ErrNotConfigured
	}

	reqBody := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	var out generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent", c.base, generateModel)
	if err := c.post(ctx, "generateContent", url, reqBody, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("generateContent: empty candidate list")
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func (c *Client) post(ctx context.Context, endpoint, url string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.key)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("gemini", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gemini", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
