package main

import (
	"math/rand/v2"
	"strings"
)

// Category is the closed set of question pools a round can draw from.
type Category string

const (
	CategoryHistory    Category = "HISTORY"
	CategoryScience    Category = "SCIENCE"
	CategoryGeography  Category = "GEOGRAPHY"
	CategoryLiterature Category = "LITERATURE"
	CategoryMath       Category = "MATH"
)

// categoryChoiceCount is how many candidates the chooser picks between.
const categoryChoiceCount = 4

var allCategories = []Category{
	CategoryHistory,
	CategoryScience,
	CategoryGeography,
	CategoryLiterature,
	CategoryMath,
}

// parseCategory matches a category name case-insensitively, with
// surrounding whitespace ignored.
func parseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range allCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// randomCategories returns categoryChoiceCount distinct categories in
// randomized order.
func randomCategories() []Category {
	shuffled := make([]Category, len(allCategories))
	copy(shuffled, allCategories)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:categoryChoiceCount]
}
