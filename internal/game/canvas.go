package game

// Canvas accumulates stroke input into a coverage percentage.
//
// Only every third stroke advances coverage. This rate-limits coverage
// growth independent of input sampling frequency, so spamming
// near-duplicate pointer-move events earns nothing extra.
type Canvas struct {
	StrokeCount     int
	CoveragePercent float64

	perfectCoverage float64
}

// NewCanvas creates an empty canvas. perfectCoverage is the coverage
// percent that counts as perfect quality; pass 0 to use the default.
func NewCanvas(perfectCoverage float64) *Canvas {
	if perfectCoverage <= 0 {
		perfectCoverage = DefaultPerfectCoverage
	}
	return &Canvas{perfectCoverage: perfectCoverage}
}

// IngestStroke records one stroke event and returns the updated coverage.
func (c *Canvas) IngestStroke() float64 {
	c.StrokeCount++
	if c.StrokeCount%StrokesPerIncrement == 0 {
		c.CoveragePercent += CoverageIncrement
		if c.CoveragePercent > MaxCoverage {
			c.CoveragePercent = MaxCoverage
		}
	}
	return c.CoveragePercent
}

// Quality derives the normalized [0,1] quality score from coverage.
func (c *Canvas) Quality() float64 {
	q := c.CoveragePercent / c.perfectCoverage
	if q > 1 {
		q = 1
	}
	return q
}
