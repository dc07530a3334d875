package domain

import (
	"fmt"
	"strings"
)

// Category is one selectable dataset of an export.
type Category string

const (
	CategoryOverview      Category = "overview"
	CategoryTopStores     Category = "top_stores"
	CategoryTopProducts   Category = "top_products"
	CategoryTopCategories Category = "top_categories"
	CategoryDateSeries    Category = "date_series"
)

// Categories lists every category in rendering order.
var Categories = []Category{
	CategoryOverview,
	CategoryTopStores,
	CategoryTopProducts,
	CategoryTopCategories,
	CategoryDateSeries,
}

var categoryLabels = map[Category]string{
	CategoryOverview:      "Overview",
	CategoryTopStores:     "Top Stores",
	CategoryTopProducts:   "Top Products",
	CategoryTopCategories: "Top Categories",
	CategoryDateSeries:    "Date Series",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the human-readable section and sheet title.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func ParseCategory(value string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	c := Category(normalized)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
	}
	return c, nil
}

// NormalizeSelection drops duplicates and orders the selection canonically.
func NormalizeSelection(selection []Category) []Category {
	seen := make(map[Category]struct{}, len(selection))
	for _, c := range selection {
		seen[c] = struct{}{}
	}

	out := make([]Category, 0, len(seen))
	for _, c := range Categories {
		if _, ok := seen[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
