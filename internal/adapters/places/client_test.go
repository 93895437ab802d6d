package places_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"matzip_radar/internal/adapters/places"
)

func page(ids []string, next string) map[string]any {
	ps := make([]map[string]any, len(ids))
	for i, id := range ids {
		ps[i] = map[string]any{
			"id":          id,
			"displayName": map[string]any{"text": "식당-" + id},
			"location":    map[string]any{"latitude": 33.5, "longitude": 126.5},
		}
	}
	out := map[string]any{"places": ps}
	if next != "" {
		out["nextPageToken"] = next
	}
	return out
}

func TestFetchPlaces_PaginatesUntilNoToken(t *testing.T) {
	var hits int32
	var tokens []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PageToken string `json:"pageToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		tokens = append(tokens, body.PageToken)

		if r.Header.Get("X-Goog-Api-Key") != "test-key" {
			t.Errorf("missing API key header")
		}
		if r.Header.Get("X-Goog-FieldMask") == "" {
			t.Errorf("missing field mask header")
		}

		switch atomic.AddInt32(&hits, 1) {
		case 1:
			_ = json.NewEncoder(w).Encode(page([]string{"a", "b"}, "tok-1"))
		default:
			_ = json.NewEncoder(w).Encode(page([]string{"c"}, ""))
		}
	}))
	defer ts.Close()

	cl := places.New(ts.URL, "test-key", 0, 100)
	got, err := cl.FetchPlaces(context.Background(), "카페 맛집", 33.5, 126.5, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 3 || got[0].ID != "a" || got[2].ID != "c" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if hits != 2 {
		t.Fatalf("expected 2 pages, got %d", hits)
	}
	if tokens[0] != "" || tokens[1] != "tok-1" {
		t.Fatalf("token chain wrong: %v", tokens)
	}
}

func TestFetchPlaces_StopsAtThreePages(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		_ = json.NewEncoder(w).Encode(page([]string{string(rune('a' + n))}, "more"))
	}))
	defer ts.Close()

	cl := places.New(ts.URL, "test-key", 0, 100)
	got, err := cl.FetchPlaces(context.Background(), "카페 맛집", 33.5, 126.5, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if hits != 3 {
		t.Fatalf("expected exactly 3 page requests, got %d", hits)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
}

func TestFetchPlaces_PartialOnMidPaginationFailure(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			_ = json.NewEncoder(w).Encode(page([]string{"a", "b"}, "tok-1"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl := places.New(ts.URL, "test-key", 0, 100)
	got, err := cl.FetchPlaces(context.Background(), "카페 맛집", 33.5, 126.5, 3)
	if err != nil {
		t.Fatalf("partial results must not surface an error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the first page kept, got %d records", len(got))
	}
}

func TestFetchPlaces_NoKeyNoCall(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request with empty key")
	}))
	defer ts.Close()

	cl := places.New(ts.URL, "", 0, 100)
	got, err := cl.FetchPlaces(context.Background(), "카페 맛집", 33.5, 126.5, 3)
	if err != nil || got != nil {
		t.Fatalf("expected silent empty result, got %v / %v", got, err)
	}
}

func TestFetchPlaces_PacingBetweenPages(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			_ = json.NewEncoder(w).Encode(page([]string{"a"}, "tok-1"))
			return
		}
		_ = json.NewEncoder(w).Encode(page([]string{"b"}, ""))
	}))
	defer ts.Close()

	delay := 50 * time.Millisecond
	cl := places.New(ts.URL, "test-key", delay, 100)
	start := time.Now()
	if _, err := cl.FetchPlaces(context.Background(), "카페 맛집", 33.5, 126.5, 3); err != nil {
		t.Fatalf("err: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Fatalf("second page issued without pacing delay (%v < %v)", elapsed, delay)
	}
}
