package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPuzzle_CheckAnswer_ExactMatch(t *testing.T) {
	// Arrange
	puzzle := &Puzzle{
		ID:     1,
		HuntID: 1,
		Name:   "Ребус",
		Answer: "фонарь",
	}

	// Act & Assert
	assert.True(t, puzzle.CheckAnswer("фонарь"), "Точный ответ должен приниматься")
}

func TestPuzzle_CheckAnswer_IgnoresCaseAndSpaces(t *testing.T) {
	// Arrange
	puzzle := &Puzzle{Answer: "Green House"}

	// Act & Assert: регистр и крайние пробелы не учитываются
	assert.True(t, puzzle.CheckAnswer("green house"))
	assert.True(t, puzzle.CheckAnswer("GREEN HOUSE"))
	assert.True(t, puzzle.CheckAnswer("  Green House  "))
}

func TestPuzzle_CheckAnswer_WrongAnswer(t *testing.T) {
	// Arrange
	puzzle := &Puzzle{Answer: "фонарь"}

	// Act & Assert
	assert.False(t, puzzle.CheckAnswer("лампа"), "Неверный ответ не должен приниматься")
	assert.False(t, puzzle.CheckAnswer(""), "Пустой ответ не должен приниматься")
	// Пробелы внутри ответа значимы
	assert.False(t, puzzle.CheckAnswer("фо нарь"))
}

func TestDefaultPointsForType(t *testing.T) {
	// Act & Assert
	assert.Equal(t, 50, DefaultPointsForType(PuzzleTypeEasy))
	assert.Equal(t, 75, DefaultPointsForType(PuzzleTypeMedium))
	assert.Equal(t, 100, DefaultPointsForType(PuzzleTypeHard))
	// Неизвестный тег — очки задаются явно
	assert.Equal(t, 0, DefaultPointsForType("impossible"))
	assert.Equal(t, 0, DefaultPointsForType(""))
}
