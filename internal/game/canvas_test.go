package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasIngestStroke(t *testing.T) {
	c := NewCanvas(0)

	// Coverage only moves on every third stroke.
	assert.Equal(t, 0.0, c.IngestStroke())
	assert.Equal(t, 0.0, c.IngestStroke())
	assert.Equal(t, 0.5, c.IngestStroke())
	assert.Equal(t, 0.5, c.IngestStroke())
	assert.Equal(t, 0.5, c.IngestStroke())
	assert.Equal(t, 1.0, c.IngestStroke())
	assert.Equal(t, 6, c.StrokeCount)
}

func TestCanvasCoverageClamped(t *testing.T) {
	c := NewCanvas(0)
	c.CoveragePercent = MaxCoverage - 0.1
	c.StrokeCount = 2

	got := c.IngestStroke()
	assert.Equal(t, MaxCoverage, got)

	// Further strokes keep it pinned.
	for i := 0; i < 9; i++ {
		got = c.IngestStroke()
	}
	assert.Equal(t, MaxCoverage, got)
}

func TestCanvasQuality(t *testing.T) {
	tests := []struct {
		name     string
		coverage float64
		want     float64
	}{
		{name: "empty canvas", coverage: 0, want: 0},
		{name: "half of perfect", coverage: 15, want: 0.5},
		{name: "exactly perfect", coverage: 30, want: 1.0},
		{name: "beyond perfect clamps to 1", coverage: 45, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(0)
			c.CoveragePercent = tt.coverage
			assert.InDelta(t, tt.want, c.Quality(), 0.0001)
		})
	}
}

func TestCanvasCustomPerfectThreshold(t *testing.T) {
	c := NewCanvas(60)
	c.CoveragePercent = 30
	assert.InDelta(t, 0.5, c.Quality(), 0.0001)
}
