package app

import "strings"

const keywordSuffix = "맛집"

// buildKeywords derives one search keyword per requested category plus one for
// the free-text detail, each paired with the fixed suffix term. Duplicate
// keyword strings are dropped keeping the first occurrence. Empty input yields
// the bare suffix so the pipeline still has something to search.
func buildKeywords(categories []string, detail string) []string {
	var raw []string
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			raw = append(raw, c+" "+keywordSuffix)
		}
	}
	if d := strings.TrimSpace(detail); d != "" {
		raw = append(raw, d+" "+keywordSuffix)
	}
	if len(raw) == 0 {
		return []string{keywordSuffix}
	}

	seen := make(map[string]struct{}, len(raw))
	out := raw[:0]
	for _, k := range raw {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// queryText is what Stage 2 embeds against the candidates: the user's own
// words when given, else the category list.
func queryText(categories []string, detail string) string {
	if d := strings.TrimSpace(detail); d != "" {
		return d
	}
	if q := strings.TrimSpace(strings.Join(categories, " ")); q != "" {
		return q
	}
	return keywordSuffix
}
