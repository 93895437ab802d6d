package domain

// PlaceRecord is one raw venue as returned by the Places text-search API
// (new v1 field names). Held in memory for a single recommendation request.
type PlaceRecord struct {
	ID               string        `json:"id"`
	DisplayName      LocalizedText `json:"displayName"`
	Rating           float64       `json:"rating"`
	UserRatingCount  int           `json:"userRatingCount"`
	Reviews          []Review      `json:"reviews"`
	Location         LatLng        `json:"location"`
	FormattedAddress string        `json:"formattedAddress"`
	EditorialSummary LocalizedText `json:"editorialSummary"`

	// Amenity-relevant sub-fields, all optional.
	ParkingOptions       *ParkingOptions       `json:"parkingOptions,omitempty"`
	AccessibilityOptions *AccessibilityOptions `json:"accessibilityOptions,omitempty"`
	GoodForGroups        *bool                 `json:"goodForGroups,omitempty"`
	MenuForChildren      *bool                 `json:"menuForChildren,omitempty"`
	ServesCocktails      *bool                 `json:"servesCocktails,omitempty"`
	ServesWine           *bool                 `json:"servesWine,omitempty"`
	DineIn               *bool                 `json:"dineIn,omitempty"`
	OutdoorSeating       *bool                 `json:"outdoorSeating,omitempty"`
	ServesVegetarianFood *bool                 `json:"servesVegetarianFood,omitempty"`
	PriceLevel           int                   `json:"priceLevel,omitempty"`
}

type LocalizedText struct {
	Text string `json:"text"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Review struct {
	Text LocalizedText `json:"text"`
}

type ParkingOptions struct {
	FreeParkingLot bool `json:"freeParkingLot"`
	PaidParkingLot bool `json:"paidParkingLot"`
	ValetParking   bool `json:"valetParking"`
}

type AccessibilityOptions struct {
	WheelchairAccessibleSeating *bool `json:"wheelchairAccessibleSeating,omitempty"`
}

// Candidate is a place that survived Stage 1, enriched as it moves down the
// pipeline: Similarity after Stage 2, TotalScore/MatchRate after scoring.
type Candidate struct {
	Name        string
	Rating      float64
	RatingCount int
	Reviews     []Review
	ReviewText  string // space-joined review bodies
	Lat, Lng    float64
	Address     string
	Amenities   AmenityAttributes

	Similarity float64
	TotalScore float64
	MatchRate  int
}
