package entity

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestHunt_IsActiveAt(t *testing.T) {
	// Arrange
	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	hunt := &Hunt{
		ID:        1,
		Name:      "Ночная охота",
		StartDate: start,
		EndDate:   end,
	}

	// Act & Assert: границы окна включительны
	assert.False(t, hunt.IsActiveAt(start.Add(-time.Minute)), "До старта охота не активна")
	assert.True(t, hunt.IsActiveAt(start), "В момент старта охота активна")
	assert.True(t, hunt.IsActiveAt(start.Add(time.Hour)), "В середине окна охота активна")
	assert.True(t, hunt.IsActiveAt(end), "В момент окончания охота активна")
	assert.False(t, hunt.IsActiveAt(end.Add(time.Second)), "После окончания охота не активна")
}

func TestHunt_BeforeStartAfterEnd(t *testing.T) {
	// Arrange
	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	hunt := &Hunt{StartDate: start, EndDate: start.Add(time.Hour)}

	// Act & Assert
	assert.True(t, hunt.IsBeforeStart(start.Add(-time.Minute)))
	assert.False(t, hunt.IsBeforeStart(start))
	assert.False(t, hunt.IsAfterEnd(start.Add(time.Hour)))
	assert.True(t, hunt.IsAfterEnd(start.Add(time.Hour+time.Second)))
}

func TestHunt_Window(t *testing.T) {
	// Arrange
	start := time.Now()
	hunt := &Hunt{StartDate: start, EndDate: start.Add(90 * time.Minute)}

	// Act & Assert
	assert.Equal(t, 90*time.Minute, hunt.Window())
}

func TestHunt_IsOrganizer(t *testing.T) {
	// Arrange
	hunt := &Hunt{
		Organizers: []User{{ID: 1}, {ID: 7}},
	}

	// Act & Assert
	assert.True(t, hunt.IsOrganizer(1))
	assert.True(t, hunt.IsOrganizer(7))
	assert.False(t, hunt.IsOrganizer(2))
}

func TestTeam_HasFixedOrder(t *testing.T) {
	// Arrange & Act & Assert
	assert.False(t, (&Team{}).HasFixedOrder(), "Пустой порядок = случайный режим")
	assert.True(t, (&Team{PuzzleOrder: pq.Int64Array{3, 1, 2}}).HasFixedOrder())
}

func TestTeam_ViewedSolvedSets(t *testing.T) {
	// Arrange
	team := &Team{
		ViewedPuzzles: []Puzzle{{ID: 1}, {ID: 2}},
		SolvedPuzzles: []Puzzle{{ID: 1}},
	}

	// Act & Assert
	assert.True(t, team.HasViewed(1))
	assert.True(t, team.HasViewed(2))
	assert.False(t, team.HasViewed(3))
	assert.True(t, team.HasSolved(1))
	assert.False(t, team.HasSolved(2))
}

func TestPuzzleTimeMaintenance_Elapsed(t *testing.T) {
	// Arrange
	start := time.Now()
	end := start.Add(42 * time.Minute)
	entry := &PuzzleTimeMaintenance{
		TeamID:          1,
		PuzzleID:        2,
		PuzzleStartTime: &start,
		PuzzleEndTime:   &end,
	}

	// Act & Assert
	assert.Equal(t, 42*time.Minute, entry.Elapsed())
	assert.False(t, entry.IsOpen())

	// Открытая запись не имеет длительности
	open := &PuzzleTimeMaintenance{PuzzleStartTime: &start}
	assert.True(t, open.IsOpen())
	assert.Equal(t, time.Duration(0), open.Elapsed())
}
