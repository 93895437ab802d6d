package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"matzip_radar/internal/adapters/observability"
	"matzip_radar/internal/domain"
)

const (
	maxPages       = 3
	pageSize       = 20
	searchLanguage = "ko"

	// One field mask for every page request; amenity sub-fields included so
	// the mapper never needs a second call per place.
	fieldMask = "places.id,places.displayName,places.rating,places.userRatingCount," +
		"places.reviews,places.location,places.formattedAddress,places.editorialSummary," +
		"places.parkingOptions,places.accessibilityOptions,places.goodForGroups," +
		"places.menuForChildren,places.servesCocktails,places.servesWine,places.dineIn," +
		"places.outdoorSeating,places.servesVegetarianFood,places.priceLevel,nextPageToken"
)

type Client struct {
	base      string
	key       string
	hc        *http.Client
	rl        *rate.Limiter
	pageDelay time.Duration
}

// New builds a text-search client. An empty key is allowed: FetchPlaces then
// returns no records without touching the network.
func New(base, key string, pageDelay time.Duration, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		key:       key,
		hc:        &http.Client{Timeout: 20 * time.Second},
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
		pageDelay: pageDelay,
	}
}

type searchRequest struct {
	TextQuery      string        `json:"textQuery"`
	LocationBias   *locationBias `json:"locationBias,omitempty"`
	LanguageCode   string        `json:"languageCode"`
	MaxResultCount int           `json:"maxResultCount"`
	PageToken      string        `json:"pageToken,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center domain.LatLng `json:"center"`
	Radius float64       `json:"radius"` // meters
}

type searchResponse struct {
	Places        []domain.PlaceRecord `json:"places"`
	NextPageToken string               `json:"nextPageToken"`
}

// FetchPlaces issues up to three page requests for one keyword. Upstream
// failures truncate pagination; whatever pages already arrived are returned.
func (c *Client) FetchPlaces(ctx context.Context, query string, lat, lng, radiusKm float64) ([]domain.PlaceRecord, error) {
	if c.key == "" {
		return nil, nil
	}

	var out []domain.PlaceRecord
	token := ""
	for page := 0; page < maxPages; page++ {
		if page > 0 {
			// Upstream requires a pause before a pageToken becomes valid.
			if !sleepCtx(ctx, c.pageDelay) {
				return out, ctx.Err()
			}
		}
		resp, err := c.searchPage(ctx, query, lat, lng, radiusKm, token)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Int("page", page+1).
				Msg("place search page failed; keeping partial results")
			return out, nil
		}
		out = append(out, resp.Places...)
		token = resp.NextPageToken
		if token == "" {
			break
		}
	}
	return out, nil
}

func (c *Client) searchPage(ctx context.Context, query string, lat, lng, radiusKm float64, token string) (*searchResponse, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchRequest{
		TextQuery: query,
		LocationBias: &locationBias{Circle: circle{
			Center: domain.LatLng{Latitude: lat, Longitude: lng},
			Radius: radiusKm * 1000,
		}},
		LanguageCode:   searchLanguage,
		MaxResultCount: pageSize,
		PageToken:      token,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.key)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("places", "searchText", 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("places", "searchText", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("searchText status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
