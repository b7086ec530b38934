package progression

import (
	"math"
	"time"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// GracePeriod — время с показа загадки, в течение которого очки не убывают
const GracePeriod = 30 * time.Minute

// Score вычисляет очки за решенную загадку по закрытой записи леджера.
// Чистая функция: запись в итог команды выполняет вызывающий.
func Score(puzzle *entity.Puzzle, hunt *entity.Hunt, entry *entity.PuzzleTimeMaintenance) int {
	return points(puzzle.Points, entry.Elapsed(), hunt.Window())
}

// points — формула начисления:
//   - первые 30 минут решение стоит максимум;
//   - дальше очки линейно убывают, знаменатель — полная длительность охоты
//     (не остаток до конца: загадка, взятая под занавес, дешевеет с той же
//     скоростью, что и взятая в начале);
//   - пол 0.5×max срабатывает всегда, даже когда член распада больше единицы
//     и неограниченное значение ушло бы в минус.
func points(maxPoints int, elapsed, window time.Duration) int {
	if elapsed < GracePeriod {
		return maxPoints
	}

	floor := 0.5 * float64(maxPoints)
	if window <= 0 {
		return int(math.Round(floor))
	}

	decayed := float64(maxPoints) * (1 - float64(elapsed-GracePeriod)/float64(window))
	if decayed < floor {
		decayed = floor
	}
	return int(math.Round(decayed))
}
