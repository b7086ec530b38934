package progression

import (
	"math/rand"
	"sync"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// Selector выбирает следующую загадку для команды.
//
// Два режима:
//   - фиксированный порядок: команде заранее назначен список загадок,
//     возвращается загадка под курсором (сдвиг курсора — на вызывающем);
//   - случайный: равномерный выбор из снапшота загадок охоты за вычетом
//     уже просмотренных и решенных.
//
// Селектор только выбирает. Назначение (current, viewed, запись леджера)
// выполняет вызывающий внутри транзакции по строке команды — это и
// гарантирует, что два конкурентных запроса не выдадут две загадки.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector создает селектор поверх источника случайности.
// В тестах фиксированный seed делает выбор воспроизводимым.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Next возвращает ID следующей загадки для команды.
// huntPuzzleIDs — снапшот идентификаторов загадок охоты.
// Возвращает ErrExhausted, когда выдавать больше нечего.
func (s *Selector) Next(team *entity.Team, huntPuzzleIDs []uint) (uint, error) {
	if team.HasFixedOrder() {
		return s.nextFixed(team)
	}
	return s.nextRandom(team, huntPuzzleIDs)
}

// nextFixed возвращает загадку под курсором фиксированного порядка
func (s *Selector) nextFixed(team *entity.Team) (uint, error) {
	if team.OrderCursor < 0 || team.OrderCursor >= len(team.PuzzleOrder) {
		return 0, ErrExhausted
	}
	return uint(team.PuzzleOrder[team.OrderCursor]), nil
}

// nextRandom равномерно выбирает из hunt − (viewed ∪ solved)
func (s *Selector) nextRandom(team *entity.Team, huntPuzzleIDs []uint) (uint, error) {
	seen := make(map[uint]bool, len(team.ViewedPuzzles)+len(team.SolvedPuzzles))
	for _, p := range team.ViewedPuzzles {
		seen[p.ID] = true
	}
	for _, p := range team.SolvedPuzzles {
		seen[p.ID] = true
	}

	candidates := make([]uint, 0, len(huntPuzzleIDs))
	for _, id := range huntPuzzleIDs {
		if !seen[id] {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		return 0, ErrExhausted
	}

	// rand.Rand не потокобезопасен, а выбор могут делать разные команды параллельно
	s.mu.Lock()
	idx := s.rng.Intn(len(candidates))
	s.mu.Unlock()

	return candidates[idx], nil
}
