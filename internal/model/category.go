package model

import (
	"fmt"
	"strings"
)

// Category partitions the catalog. The set is closed.
type Category string

const (
	CategoryFish     Category = "fish"
	CategoryBrainrot Category = "brainrot"
)

// Categories returns the fixed categories in display order.
func Categories() []Category {
	return []Category{CategoryFish, CategoryBrainrot}
}

// Valid reports whether c belongs to the fixed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryFish, CategoryBrainrot:
		return true
	}
	return false
}

// Title is the category name with its first letter upper-cased.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory lower-cases and trims text and accepts only known categories.
func ParseCategory(text string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(text)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", text)
	}
	return c, nil
}
