package domain

// TriState encodes an amenity the source may not report at all.
type TriState int

const (
	Unknown TriState = -1
	Absent  TriState = 0
	Present TriState = 1
)

// Alcohol service levels, after the Yelp-style vocabulary.
const (
	AlcoholNone    = "none"
	AlcoholFullBar = "full_bar"
)

// AmenityAttributes is the normalized amenity set derived once per place.
// Fixed schema: every known key has a field, so filter lookups never miss.
type AmenityAttributes struct {
	BusinessParking          TriState
	WheelchairAccessible     TriState
	RestaurantsGoodForGroups TriState
	GoodForKids              TriState
	DineIn                   TriState
	OutdoorSeating           TriState
	Vegetarian               TriState
	Alcohol                  string // AlcoholNone | AlcoholFullBar
	RestaurantsPriceRange2   int    // price level, 0 when unreported
}

// Lookup returns the integer value for a filterable amenity key. The second
// return is false for unknown keys and for Alcohol, which is a string enum
// and never participates in the required-present filter.
func (a AmenityAttributes) Lookup(key string) (int, bool) {
	switch key {
	case "BusinessParking":
		return int(a.BusinessParking), true
	case "WheelchairAccessible":
		return int(a.WheelchairAccessible), true
	case "RestaurantsGoodForGroups":
		return int(a.RestaurantsGoodForGroups), true
	case "GoodForKids":
		return int(a.GoodForKids), true
	case "DineIn":
		return int(a.DineIn), true
	case "OutdoorSeating":
		return int(a.OutdoorSeating), true
	case "Vegetarian":
		return int(a.Vegetarian), true
	case "RestaurantsPriceRange2":
		return a.RestaurantsPriceRange2, true
	}
	return 0, false
}
