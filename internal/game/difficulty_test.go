package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{in: "easy", want: DifficultyEasy},
		{in: "medium", want: DifficultyMedium},
		{in: "hard", want: DifficultyHard},
		{in: "extreme", want: DifficultyExtreme},
		{in: "nightmare", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDifficultyJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, `"hard"`, string(data))

	var d Difficulty
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, DifficultyHard, d)
}

func TestDifficultyUnmarshalUnknown(t *testing.T) {
	var d Difficulty
	assert.Error(t, json.Unmarshal([]byte(`"impossible"`), &d))
}

// Risk must rise monotonically with difficulty: less time, faster guard,
// wider detection range.
func TestConfigOrdering(t *testing.T) {
	order := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}

	for i := 1; i < len(order); i++ {
		lo := ConfigFor(order[i-1])
		hi := ConfigFor(order[i])
		assert.Greater(t, lo.TimeLimit, hi.TimeLimit, "time limit must shrink from %s to %s", order[i-1], order[i])
		assert.Less(t, lo.GuardSpeed, hi.GuardSpeed, "guard speed must grow from %s to %s", order[i-1], order[i])
		assert.Less(t, lo.DetectionRange, hi.DetectionRange, "detection range must grow from %s to %s", order[i-1], order[i])
	}
}
