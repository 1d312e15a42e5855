package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeatLabels(t *testing.T) {
	got := normalizeSeatLabels([]string{" a1", "F5 ", "a1", "", "  "})
	assert.Equal(t, []string{"A1", "F5"}, got)

	assert.Empty(t, normalizeSeatLabels(nil))
	assert.Empty(t, normalizeSeatLabels([]string{"", "  "}))
}

func TestIntersectLabels(t *testing.T) {
	taken := []string{"A1", "C3", "F5"}

	assert.Equal(t, []string{"A1", "F5"}, intersectLabels([]string{"A1", "B2", "F5"}, taken))
	assert.Nil(t, intersectLabels([]string{"B2", "D4"}, taken))
	assert.Nil(t, intersectLabels(nil, taken))
}
