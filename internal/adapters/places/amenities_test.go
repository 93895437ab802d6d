package places_test

import (
	"testing"

	"matzip_radar/internal/adapters/places"
	"matzip_radar/internal/domain"
)

func b(v bool) *bool { return &v }

func TestMapAmenities_ParkingTriState(t *testing.T) {
	// No parking info at all -> unknown.
	a := places.MapAmenities(domain.PlaceRecord{})
	if a.BusinessParking != domain.Unknown {
		t.Fatalf("no parkingOptions: %v", a.BusinessParking)
	}

	// Reported but nothing offered -> absent.
	a = places.MapAmenities(domain.PlaceRecord{ParkingOptions: &domain.ParkingOptions{}})
	if a.BusinessParking != domain.Absent {
		t.Fatalf("empty parkingOptions: %v", a.BusinessParking)
	}

	// Any lot or valet option -> present.
	a = places.MapAmenities(domain.PlaceRecord{ParkingOptions: &domain.ParkingOptions{PaidParkingLot: true}})
	if a.BusinessParking != domain.Present {
		t.Fatalf("paid lot: %v", a.BusinessParking)
	}
}

func TestMapAmenities_BoolFields(t *testing.T) {
	a := places.MapAmenities(domain.PlaceRecord{
		GoodForGroups:        b(true),
		MenuForChildren:      b(false),
		DineIn:               b(true),
		ServesVegetarianFood: b(true),
	})
	if a.RestaurantsGoodForGroups != domain.Present {
		t.Fatalf("goodForGroups: %v", a.RestaurantsGoodForGroups)
	}
	if a.GoodForKids != domain.Absent {
		t.Fatalf("menuForChildren=false: %v", a.GoodForKids)
	}
	if a.DineIn != domain.Present || a.Vegetarian != domain.Present {
		t.Fatalf("dineIn/vegetarian: %v %v", a.DineIn, a.Vegetarian)
	}
	if a.OutdoorSeating != domain.Unknown {
		t.Fatalf("unreported outdoorSeating: %v", a.OutdoorSeating)
	}
}

func TestMapAmenities_AlcoholAndPrice(t *testing.T) {
	a := places.MapAmenities(domain.PlaceRecord{ServesWine: b(true), PriceLevel: 2})
	if a.Alcohol != domain.AlcoholFullBar {
		t.Fatalf("wine -> full_bar, got %q", a.Alcohol)
	}
	if a.RestaurantsPriceRange2 != 2 {
		t.Fatalf("price level: %d", a.RestaurantsPriceRange2)
	}

	a = places.MapAmenities(domain.PlaceRecord{ServesCocktails: b(false)})
	if a.Alcohol != domain.AlcoholNone {
		t.Fatalf("no alcohol signals -> none, got %q", a.Alcohol)
	}
}

func TestMapAmenities_Wheelchair(t *testing.T) {
	a := places.MapAmenities(domain.PlaceRecord{
		AccessibilityOptions: &domain.AccessibilityOptions{WheelchairAccessibleSeating: b(true)},
	})
	if a.WheelchairAccessible != domain.Present {
		t.Fatalf("wheelchair seating: %v", a.WheelchairAccessible)
	}

	// accessibilityOptions present but seating unreported -> unknown.
	a = places.MapAmenities(domain.PlaceRecord{AccessibilityOptions: &domain.AccessibilityOptions{}})
	if a.WheelchairAccessible != domain.Unknown {
		t.Fatalf("unreported seating: %v", a.WheelchairAccessible)
	}
}
