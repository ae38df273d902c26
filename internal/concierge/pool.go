package concierge

import (
	"strings"

	"concierge/internal/models"
)

type curated struct {
	name     string
	district string
}

// Shrines offered even when the data source has not categorised them.
var curatedShrines = []curated{
	{name: "櫛田神社", district: "博多区"},
	{name: "警固神社", district: "中央区"},
	{name: "光雲神社", district: "中央区"},
	{name: "住吉神社", district: "博多区"},
}

type benefit struct {
	triggers []string
	tags     []string
}

var benefits = []benefit{
	{triggers: []string{"恋愛", "結婚", "縁結び"}, tags: []string{"縁結び", "恋愛"}},
	{triggers: []string{"仕事", "就職", "商売"}, tags: []string{"商売繁盛", "必勝"}},
}

// ShrinePool returns the locations eligible for a shrine route, in dataset order.
func ShrinePool(ds *models.Dataset) []models.Location {
	var pool []models.Location
	for _, l := range ds.Locations {
		if l.Category == models.CategoryShrine || isCurated(l) {
			pool = append(pool, l)
		}
	}
	return pool
}

func isCurated(l models.Location) bool {
	for _, c := range curatedShrines {
		if strings.Contains(l.Name, c.name) && strings.Contains(l.Address, c.district) {
			return true
		}
	}
	return false
}

// TouristSpots returns the categorised locations that are not shrines.
func TouristSpots(ds *models.Dataset) []models.Location {
	var spots []models.Location
	for _, l := range ds.Locations {
		if l.Category != "" && l.Category != models.CategoryShrine {
			spots = append(spots, l)
		}
	}
	return spots
}

// Recommend narrows pool to the shrines whose benefits match a wish
// mentioned in query. The full pool is returned when no wish is mentioned
// or no shrine grants it.
func Recommend(pool []models.Location, query string) []models.Location {
	for _, b := range benefits {
		if !containsAny(query, b.triggers) {
			continue
		}
		var narrowed []models.Location
		for _, l := range pool {
			if l.HasBenefit(b.tags...) {
				narrowed = append(narrowed, l)
			}
		}
		if len(narrowed) > 0 {
			return narrowed
		}
		return pool
	}
	return pool
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
