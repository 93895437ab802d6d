package domain

// Features is the best-effort review analysis for one top-ranked place.
// Zero value means "extraction unavailable"; the report omits those lines.
type Features struct {
	Atmosphere string   `json:"atmosphere"`
	Companion  string   `json:"companion"`
	Purpose    string   `json:"purpose"`
	Keywords   []string `json:"keywords"`
}

func (f Features) Empty() bool {
	return f.Atmosphere == "" && f.Companion == "" && f.Purpose == "" && len(f.Keywords) == 0
}

// Marker is one map pin for a selected place.
type Marker struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Rating  float64 `json:"rating"`
	Address string  `json:"address"`
}

// Recommendation is the full outcome of one pipeline run. Built fresh per
// request, never persisted.
type Recommendation struct {
	Report        string   `json:"result"`
	Stores        []Marker `json:"stores"`
	ScannedCount  int      `json:"scanned_count"`
	AnalyzedCount int      `json:"analyzed_count"`

	// Stage 1 diagnostics, surfaced for the UI but not used for control flow.
	RejectedByRadius  int `json:"rejected_by_radius"`
	RejectedByAmenity int `json:"rejected_by_amenity"`
}

// RecommendRequest is the caller-facing input of the pipeline.
type RecommendRequest struct {
	Categories []string       `json:"categories"`
	UserDetail string         `json:"user_detail"`
	Lat        float64        `json:"lat"`
	Lng        float64        `json:"lng"`
	RadiusKm   float64        `json:"radius_km"`
	Filters    map[string]int `json:"filters,omitempty"`
}
