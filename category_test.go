package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := map[string]struct {
		input string
		want  Category
		ok    bool
	}{
		"exact":     {"HISTORY", CategoryHistory, true},
		"lowercase": {"science", CategoryScience, true},
		"padded":    {"  geography ", CategoryGeography, true},
		"unknown":   {"COOKING", "", false},
		"empty":     {"", "", false},
		"near miss": {"HISTORIE", "", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := parseCategory(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRandomCategories(t *testing.T) {
	for i := 0; i < 20; i++ {
		choices := randomCategories()
		require.Len(t, choices, categoryChoiceCount)

		seen := make(map[Category]bool, len(choices))
		for _, c := range choices {
			assert.Contains(t, allCategories, c)
			assert.False(t, seen[c], "duplicate category offered")
			seen[c] = true
		}
	}
}
