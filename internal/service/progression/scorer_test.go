package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

func TestPoints_Scenarios(t *testing.T) {
	// Охота ровно 60 минут, загадка на 100 очков
	window := 60 * time.Minute

	testCases := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{"решено за 10 минут — грейс-период, максимум", 10 * time.Minute, 100},
		{"решено за 45 минут — линейный спад: 100×(1−15/60)", 45 * time.Minute, 75},
		{"решено за 90 минут — член распада за единицей, пол 50", 90 * time.Minute, 50},
		{"решено ровно на границе грейс-периода", 30 * time.Minute, 100},
		{"решено мгновенно", 0, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, points(100, tc.elapsed, window))
		})
	}
}

func TestPoints_MonotonicNonIncreasing(t *testing.T) {
	// Arrange
	window := 2 * time.Hour
	maxPoints := 75

	// Act & Assert: при росте elapsed очки не растут и остаются в [0.5×max, max]
	prev := points(maxPoints, 0, window)
	for elapsed := time.Minute; elapsed <= 5*time.Hour; elapsed += 7 * time.Minute {
		p := points(maxPoints, elapsed, window)
		assert.LessOrEqual(t, p, prev, "очки не должны расти с ростом времени решения")
		assert.GreaterOrEqual(t, p, 38, "очки не должны падать ниже round(0.5×max)")
		assert.LessOrEqual(t, p, maxPoints)
		prev = p
	}
}

func TestPoints_ZeroWindow(t *testing.T) {
	// Вырожденное окно охоты: после грейс-периода сразу пол
	assert.Equal(t, 50, points(100, time.Hour, 0))
	// До грейс-периода окно вообще не участвует
	assert.Equal(t, 100, points(100, 10*time.Minute, 0))
}

func TestScore_FromLedgerEntry(t *testing.T) {
	// Arrange
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	solved := start.Add(45 * time.Minute)

	hunt := &entity.Hunt{
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	}
	puzzle := &entity.Puzzle{Points: 100, HuntID: 1}
	entry := &entity.PuzzleTimeMaintenance{
		PuzzleStartTime: &start,
		PuzzleEndTime:   &solved,
	}

	// Act
	got := Score(puzzle, hunt, entry)

	// Assert
	assert.Equal(t, 75, got)
}
