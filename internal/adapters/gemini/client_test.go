package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"matzip_radar/internal/adapters/gemini"
	"matzip_radar/internal/domain"
)

func TestEmbed_BatchRoundtrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "batchEmbedContents") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Requests []struct {
				Content struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"content"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		embeddings := make([]map[string]any, len(body.Requests))
		for i := range body.Requests {
			embeddings[i] = map[string]any{"values": []float64{float64(i), 1}}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
	}))
	defer ts.Close()

	cl := gemini.New(ts.URL, "test-key", 100)
	vecs, err := cl.Embed(context.Background(), []string{"하나", "둘", "셋"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(vecs) != 3 || vecs[2][0] != 2 {
		t.Fatalf("unexpected vectors: %v", vecs)
	}
}

func TestEmbed_SplitsOversizedBatch(t *testing.T) {
	var sizes []int
	var served int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Requests []json.RawMessage `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		sizes = append(sizes, len(body.Requests))

		embeddings := make([]map[string]any, len(body.Requests))
		for i := range body.Requests {
			embeddings[i] = map[string]any{"values": []float64{float64(served), 1}}
			served++
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
	}))
	defer ts.Close()

	texts := make([]string, 151)
	for i := range texts {
		texts[i] = "텍스트"
	}

	cl := gemini.New(ts.URL, "test-key", 1000)
	vecs, err := cl.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(sizes) != 2 || sizes[0] != 100 || sizes[1] != 51 {
		t.Fatalf("batch sizes = %v, want [100 51]", sizes)
	}
	if len(vecs) != 151 || vecs[0][0] != 0 || vecs[150][0] != 150 {
		t.Fatalf("vector order lost across batches: n=%d first=%v last=%v", len(vecs), vecs[0], vecs[len(vecs)-1])
	}
}

func TestEmbed_NotConfigured(t *testing.T) {
	cl := gemini.New("http://unused", "", 100)
	if _, err := cl.Embed(context.Background(), []string{"텍스트"}); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEmbed_CountMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": []map[string]any{{"values": []float64{1}}}})
	}))
	defer ts.Close()

	cl := gemini.New(ts.URL, "test-key", 100)
	if _, err := cl.Embed(context.Background(), []string{"하나", "둘"}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestGenerateText_ConcatenatesParts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{
					{"text": `{"atmosphere":`},
					{"text": `"조용한"}`},
				}},
			}},
		})
	}))
	defer ts.Close()

	cl := gemini.New(ts.URL, "test-key", 100)
	got, err := cl.GenerateText(context.Background(), "프롬프트")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != `{"atmosphere":"조용한"}` {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestGenerateText_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	cl := gemini.New(ts.URL, "test-key", 100)
	if _, err := cl.GenerateText(context.Background(), "프롬프트"); err == nil {
		t.Fatalf("expected error on 429")
	}
}
