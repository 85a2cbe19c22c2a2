package game

import "time"

// Encounter timing
const (
	GuardTickInterval = 500 * time.Millisecond
	ClockTickInterval = time.Second
)

// Guard patrol
const (
	GuardStartDistance = 100.0 // percent, guard starts as far away as possible
	GuardDetectionOdds = 0.5   // second-stage coin flip once in range
)

// Coverage accumulation
const (
	StrokesPerIncrement    = 3   // every third stroke advances coverage
	CoverageIncrement      = 0.5 // percent added per accepted increment
	MaxCoverage            = 100.0
	DefaultPerfectCoverage = 30.0 // coverage percent that counts as perfect quality
)

// Progression
const (
	MaxWantedLevel       = 5
	ArrestMoneyKeepRatio = 0.7 // fraction of money kept after an arrest
	DefaultGalleryLimit  = 100
)
