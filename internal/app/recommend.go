package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"matzip_radar/internal/adapters/observability"
	"matzip_radar/internal/domain"
)

const (
	defaultPlaceCap     = 150
	defaultSimThreshold = 0.01

	topSelect = 15
	topEnrich = 5
)

// RecommendService runs the whole recommendation pipeline: keyword fetches,
// deduplication, radius/amenity filtering, semantic ranking, scoring and
// report assembly. All collaborators are injected so tests substitute fakes.
type RecommendService struct {
	places domain.PlaceSearcher
	embed  domain.Embedder
	llm    domain.FeatureModel
	mapper func(domain.PlaceRecord) domain.AmenityAttributes
	cache  domain.Cache

	placeCap     int
	simThreshold float64
	cacheTTL     time.Duration
}

type RecommendOptions struct {
	PlaceCap     int           // unique-place cap across keyword fetches
	SimThreshold float64       // Stage 2 cosine cutoff
	Cache        domain.Cache  // optional response cache
	CacheTTL     time.Duration // ignored when Cache is nil
}

func NewRecommendService(p domain.PlaceSearcher, e domain.Embedder, llm domain.FeatureModel,
	mapper func(domain.PlaceRecord) domain.AmenityAttributes, opts RecommendOptions) *RecommendService {
	s := &RecommendService{
		places:       p,
		embed:        e,
		llm:          llm,
		mapper:       mapper,
		cache:        opts.Cache,
		placeCap:     opts.PlaceCap,
		simThreshold: opts.SimThreshold,
		cacheTTL:     opts.CacheTTL,
	}
	if s.placeCap <= 0 {
		s.placeCap = defaultPlaceCap
	}
	if s.simThreshold == 0 {
		s.simThreshold = defaultSimThreshold
	}
	return s
}

// Recommend is the pipeline boundary. "No results" is a designed outcome, not
// an error, and an unexpected panic anywhere below is converted into a
// degraded error-flavored report so the caller always gets a response.
func (s *RecommendService) Recommend(ctx context.Context, req domain.RecommendRequest) (rec domain.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recommendation pipeline panicked")
			observability.ObservePipelineRun("degraded")
			rec = domain.Recommendation{
				Report: reportErrorPrefix + "내부 처리 중 문제가 발생했습니다.",
				Stores: []domain.Marker{},
			}
			err = nil
		}
	}()

	key := cacheKey(req)
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &rec); ok {
			return rec, nil
		}
	}

	rec = s.run(ctx, req)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rec, int(s.cacheTTL.Seconds()))
	}
	return rec, nil
}

func (s *RecommendService) run(ctx context.Context, req domain.RecommendRequest) domain.Recommendation {
	// 1) Collection: one fetch per keyword, merged unique-by-ID, capped.
	places := s.collect(ctx, req)
	scanned := len(places)
	observability.ObservePipelineStage("scanned", scanned)
	if scanned == 0 {
		observability.ObservePipelineRun("empty")
		return domain.Recommendation{Report: reportNoPlaces, Stores: []domain.Marker{}}
	}

	// 2) Stage 1: radius then required amenities.
	candidates, rejRadius, rejAmenity := s.hardFilter(req, places)
	observability.ObservePipelineStage("rejected_radius", rejRadius)
	observability.ObservePipelineStage("rejected_amenity", rejAmenity)
	if len(candidates) == 0 {
		observability.ObservePipelineRun("empty")
		return domain.Recommendation{
			Report:            reportNoMatches,
			Stores:            []domain.Marker{},
			ScannedCount:      scanned,
			RejectedByRadius:  rejRadius,
			RejectedByAmenity: rejAmenity,
		}
	}

	// 3) Stage 2: semantic ranking against the user's own words.
	query := queryText(req.Categories, req.UserDetail)
	candidates = s.softFilter(ctx, query, candidates)
	analyzed := len(candidates)
	observability.ObservePipelineStage("analyzed", analyzed)
	if analyzed == 0 {
		observability.ObservePipelineRun("empty")
		return domain.Recommendation{
			Report:            reportNoMatches,
			Stores:            []domain.Marker{},
			ScannedCount:      scanned,
			RejectedByRadius:  rejRadius,
			RejectedByAmenity: rejAmenity,
		}
	}

	// 4) Scoring and selection. Stable sort keeps insertion order on ties.
	for i := range candidates {
		c := &candidates[i]
		c.TotalScore = totalScore(c.Similarity, c.Rating, c.RatingCount, len(c.Reviews))
		c.MatchRate = matchRate(c.TotalScore)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalScore > candidates[j].TotalScore
	})
	if len(candidates) > topSelect {
		candidates = candidates[:topSelect]
	}
	observability.ObservePipelineStage("selected", len(candidates))

	// 5) Review analysis for the head of the ranking only; the model call is
	// expensive and best-effort.
	ranked := make([]rankedPlace, len(candidates))
	for i, c := range candidates {
		ranked[i] = rankedPlace{Candidate: c}
		if i < topEnrich {
			ranked[i].Features = s.extractFeatures(ctx, c)
		}
	}

	report, markers := buildReport(query, analyzed, ranked)
	observability.ObservePipelineRun("ok")
	return domain.Recommendation{
		Report:            report,
		Stores:            markers,
		ScannedCount:      scanned,
		AnalyzedCount:     analyzed,
		RejectedByRadius:  rejRadius,
		RejectedByAmenity: rejAmenity,
	}
}

// collect runs one fetch per generated keyword and merges the batches into a
// unique-by-ID set, first occurrence wins. Later keywords are skipped once the
// cap is reached; the cap bounds embedding cost, not completeness.
func (s *RecommendService) collect(ctx context.Context, req domain.RecommendRequest) []domain.PlaceRecord {
	seen := make(map[string]struct{})
	var merged []domain.PlaceRecord

	for _, kw := range buildKeywords(req.Categories, req.UserDetail) {
		if len(merged) >= s.placeCap {
			break
		}
		batch, err := s.places.FetchPlaces(ctx, kw, req.Lat, req.Lng, req.RadiusKm)
		if err != nil {
			log.Warn().Err(err).Str("keyword", kw).Msg("place fetch failed; continuing with other keywords")
			continue
		}
		for _, p := range batch {
			if p.ID == "" {
				continue
			}
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}

// hardFilter is Stage 1: drop places outside the radius, then places missing a
// required amenity. An Unknown attribute passes; absence of information is not
// disqualifying.
func (s *RecommendService) hardFilter(req domain.RecommendRequest, places []domain.PlaceRecord) (cands []domain.Candidate, rejRadius, rejAmenity int) {
	for _, p := range places {
		dist := DistanceKm(req.Lat, req.Lng, p.Location.Latitude, p.Location.Longitude)
		if dist > req.RadiusKm {
			rejRadius++
			continue
		}

		attrs := s.mapper(p)
		if rejectedByAmenities(attrs, req.Filters) {
			rejAmenity++
			continue
		}

		texts := make([]string, 0, len(p.Reviews))
		for _, r := range p.Reviews {
			texts = append(texts, r.Text.Text)
		}
		name := p.DisplayName.Text
		if name == "" {
			name = "이름없음"
		}
		cands = append(cands, domain.Candidate{
			Name:        name,
			Rating:      p.Rating,
			RatingCount: p.UserRatingCount,
			Reviews:     p.Reviews,
			ReviewText:  strings.Join(texts, " "),
			Lat:         p.Location.Latitude,
			Lng:         p.Location.Longitude,
			Address:     p.FormattedAddress,
			Amenities:   attrs,
		})
	}
	return cands, rejRadius, rejAmenity
}

// rejectedByAmenities applies the required-present filter: only entries with
// value 1 are requirements, and only a confirmed-absent attribute (exactly 0)
// disqualifies. Other configured values are ignored.
func rejectedByAmenities(attrs domain.AmenityAttributes, filters map[string]int) bool {
	for key, want := range filters {
		if want != 1 {
			continue
		}
		if v, ok := attrs.Lookup(key); ok && v == 0 {
			return true
		}
	}
	return false
}

// softFilter is Stage 2: embed every candidate text plus the query in one
// batch and keep candidates at or above the similarity threshold. When the
// embedder is unconfigured or fails, all candidates pass with similarity 0 and
// ranking falls back to rating/popularity signals.
func (s *RecommendService) softFilter(ctx context.Context, query string, cands []domain.Candidate) []domain.Candidate {
	texts := make([]string, len(cands)+1)
	for i, c := range cands {
		texts[i] = c.Name + " " + c.ReviewText
	}
	texts[len(cands)] = query

	vecs, err := s.embed.Embed(ctx, texts)
	if err != nil || len(vecs) != len(texts) {
		log.Warn().Err(err).Msg("embedding unavailable; ranking without semantic similarity")
		for i := range cands {
			cands[i].Similarity = 0
		}
		return cands
	}

	qv := vecs[len(cands)]
	passed := cands[:0]
	for i := range cands {
		sim := cosine(vecs[i], qv)
		if sim < s.simThreshold {
			continue
		}
		cands[i].Similarity = sim
		passed = append(passed, cands[i])
	}
	return passed
}

// cacheKey hashes the full request so any change in location, radius, words or
// filters becomes a distinct cache entry.
func cacheKey(req domain.RecommendRequest) string {
	b, _ := json.Marshal(req)
	sum := sha1.Sum(b)
	return "rec:" + hex.EncodeToString(sum[:])
}
