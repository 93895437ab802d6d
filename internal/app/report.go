package app

import (
	"fmt"
	"strings"

	"matzip_radar/internal/domain"
)

const (
	reportNoPlaces    = "❌ 검색 결과가 없습니다."
	reportNoMatches   = "⚠️ 충분히 관련 있는 식당이 없습니다."
	reportErrorPrefix = "오류 발생: "

	reportRule = "================================================================="
	entryRule  = "-----------------------------------------------------------------"
)

// rankedPlace pairs a selected candidate with its best-effort features.
type rankedPlace struct {
	domain.Candidate
	Features domain.Features
}

// buildReport renders the ranked textual report and the marker list for every
// selected place. Feature lines appear only when extraction yielded data.
func buildReport(query string, analyzed int, ranked []rankedPlace) (string, []domain.Marker) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n🏆 '%s' AI 추천 리포트 (분석 대상: %d개)\n%s\n", reportRule, query, analyzed, reportRule)

	markers := make([]domain.Marker, 0, len(ranked))
	for i, p := range ranked {
		fmt.Fprintf(&sb, "🏅 %d위: %s (매칭 %d%%)\n", i+1, p.Name, p.MatchRate)
		fmt.Fprintf(&sb, "   ⭐️ 평점: %.1f점 | 리뷰 %d개\n", p.Rating, p.RatingCount)
		if !p.Features.Empty() {
			fmt.Fprintf(&sb, "   🏠 분위기: %s | 👥 추천: %s\n", orDash(p.Features.Atmosphere), orDash(p.Features.Companion))
			fmt.Fprintf(&sb, "   🎯 목  적: %s | 🔑 키워드: %s\n", orDash(p.Features.Purpose), keywordLine(p.Features.Keywords))
		}
		sb.WriteString(entryRule + "\n")

		markers = append(markers, domain.Marker{
			Name:    p.Name,
			Lat:     p.Lat,
			Lng:     p.Lng,
			Rating:  p.Rating,
			Address: p.Address,
		})
	}
	return sb.String(), markers
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func keywordLine(kws []string) string {
	if len(kws) == 0 {
		return "-"
	}
	return strings.Join(kws, ", ")
}
