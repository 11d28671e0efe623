// Package catalog holds the fixed type/genre lookup tables and the
// client-side filtering applied to shopping-list and stock views.
package catalog

import (
	"strings"

	"github.com/frigocheck/go-frigocheck/client"
)

// UnknownLabel is returned for ids outside the fixed tables.
const UnknownLabel = "Inconnu"

// Storage types.
const (
	TypeFresh  = 5
	TypeCanned = 6
	TypeFrozen = 7
)

// Product genres.
const (
	GenreFruitsVegetables = 5
	GenreBeverages        = 6
	GenreMeat             = 7
	GenreDairy            = 8
	GenreGrocery          = 9
)

var typeLabels = map[int]string{
	TypeFresh:  "Frais",
	TypeCanned: "Conserve",
	TypeFrozen: "Surgelé",
}

var genreLabels = map[int]string{
	GenreFruitsVegetables: "F & L",
	GenreBeverages:        "NAL",
	GenreMeat:             "Viandes",
	GenreDairy:            "Produits Laitiers",
	GenreGrocery:          "Épicerie",
}

// TypeLabel returns the display label for a storage type id.
func TypeLabel(typeID int) string {
	if label, ok := typeLabels[typeID]; ok {
		return label
	}
	return UnknownLabel
}

// GenreLabel returns the display label for a genre id.
func GenreLabel(genreID int) string {
	if label, ok := genreLabels[genreID]; ok {
		return label
	}
	return UnknownLabel
}

// Filter is the client-side item predicate: a case-insensitive
// substring match on the designation plus optional type/genre
// equality. Zero means "all" for both ids.
type Filter struct {
	Query   string
	TypeID  int
	GenreID int
}

// Matches reports whether an item passes the filter.
func (f Filter) Matches(item client.Item) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(item.Designation), strings.ToLower(f.Query)) {
		return false
	}
	if f.TypeID != 0 && item.TypeID != f.TypeID {
		return false
	}
	if f.GenreID != 0 && item.GenreID != f.GenreID {
		return false
	}
	return true
}

// Apply returns the items passing the filter, preserving order.
func (f Filter) Apply(items []client.Item) []client.Item {
	filtered := make([]client.Item, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// GroupByType buckets items under their type label, the way the stock
// view renders them.
func GroupByType(items []client.Item) map[string][]client.Item {
	grouped := map[string][]client.Item{}
	for _, item := range items {
		label := TypeLabel(item.TypeID)
		grouped[label] = append(grouped[label], item)
	}
	return grouped
}
