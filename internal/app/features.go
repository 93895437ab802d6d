package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"matzip_radar/internal/domain"
)

const (
	featureReviewLimit = 5
	featureTextLimit   = 800
)

// extractFeatures asks the generative model for atmosphere/companion/purpose
// tags from a place's recent reviews. Any failure degrades to an empty feature
// set; the pipeline never aborts on enrichment.
func (s *RecommendService) extractFeatures(ctx context.Context, c domain.Candidate) domain.Features {
	if len(c.Reviews) == 0 {
		return domain.Features{}
	}

	parts := make([]string, 0, featureReviewLimit)
	for i, r := range c.Reviews {
		if i == featureReviewLimit {
			break
		}
		parts = append(parts, r.Text.Text)
	}
	combined := strings.Join(parts, " ")
	if rs := []rune(combined); len(rs) > featureTextLimit {
		combined = string(rs[:featureTextLimit])
	}

	prompt := fmt.Sprintf(`당신은 맛집 데이터 분석가입니다. 아래 식당의 리뷰를 분석하여 정보를 JSON 포맷으로 추출하세요.
식당명: %s
리뷰데이터: %s
반드시 JSON 형식만 출력하세요: {"atmosphere": "...", "companion": "...", "purpose": "...", "keywords": [...]}`,
		c.Name, combined)

	text, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("place", c.Name).Msg("feature extraction failed")
		return domain.Features{}
	}

	var f domain.Features
	if err := json.Unmarshal([]byte(firstJSONObject(text)), &f); err != nil {
		log.Warn().Err(err).Str("place", c.Name).Msg("feature extraction returned malformed output")
		return domain.Features{}
	}
	return f
}

// firstJSONObject returns the first brace-delimited substring of s, covering
// models that wrap their JSON in prose or code fences. Empty when no braces.
func firstJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
