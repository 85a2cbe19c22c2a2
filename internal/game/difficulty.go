package game

import (
	"encoding/json"
	"fmt"
	"time"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyExtreme
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Difficulty as a string.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON deserializes Difficulty from a string.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDifficulty converts a string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	case "extreme":
		return DifficultyExtreme, nil
	default:
		return DifficultyEasy, fmt.Errorf("unknown difficulty: %q", s)
	}
}

// DifficultyConfig is the fixed encounter configuration for one difficulty.
type DifficultyConfig struct {
	TimeLimit      time.Duration
	GuardSpeed     float64
	DetectionRange float64 // percent, guard closer than this may detect
}

// ConfigFor returns the immutable configuration for a difficulty.
// Risk and reward rise monotonically from easy to extreme: less time,
// a faster guard, a wider detection range.
func ConfigFor(d Difficulty) DifficultyConfig {
	switch d {
	case DifficultyMedium:
		return DifficultyConfig{TimeLimit: 45 * time.Second, GuardSpeed: 3, DetectionRange: 25}
	case DifficultyHard:
		return DifficultyConfig{TimeLimit: 30 * time.Second, GuardSpeed: 4, DetectionRange: 35}
	case DifficultyExtreme:
		return DifficultyConfig{TimeLimit: 20 * time.Second, GuardSpeed: 5, DetectionRange: 45}
	default:
		return DifficultyConfig{TimeLimit: 60 * time.Second, GuardSpeed: 2, DetectionRange: 15}
	}
}
