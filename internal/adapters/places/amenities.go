package places

import "matzip_radar/internal/domain"

// MapAmenities converts a raw place into the normalized tri-state amenity set.
// Pure function, no I/O; derived once per place and never mutated afterward.
func MapAmenities(p domain.PlaceRecord) domain.AmenityAttributes {
	a := domain.AmenityAttributes{
		BusinessParking:          parkingState(p.ParkingOptions),
		WheelchairAccessible:     domain.Unknown,
		RestaurantsGoodForGroups: triState(p.GoodForGroups),
		GoodForKids:              triState(p.MenuForChildren),
		DineIn:                   triState(p.DineIn),
		OutdoorSeating:           triState(p.OutdoorSeating),
		Vegetarian:               triState(p.ServesVegetarianFood),
		Alcohol:                  domain.AlcoholNone,
		RestaurantsPriceRange2:   p.PriceLevel,
	}
	if p.AccessibilityOptions != nil {
		a.WheelchairAccessible = triState(p.AccessibilityOptions.WheelchairAccessibleSeating)
	}
	if boolVal(p.ServesCocktails) || boolVal(p.ServesWine) {
		a.Alcohol = domain.AlcoholFullBar
	}
	return a
}

// parkingState: present when any lot/valet option is offered; unknown when the
// source reported nothing about parking at all; absent otherwise.
func parkingState(p *domain.ParkingOptions) domain.TriState {
	if p == nil {
		return domain.Unknown
	}
	if p.FreeParkingLot || p.ValetParking || p.PaidParkingLot {
		return domain.Present
	}
	return domain.Absent
}

func triState(b *bool) domain.TriState {
	switch {
	case b == nil:
		return domain.Unknown
	case *b:
		return domain.Present
	default:
		return domain.Absent
	}
}

func boolVal(b *bool) bool { return b != nil && *b }
