package progression

import (
	"github.com/yourusername/hunt-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// AdvanceMode — способ смены текущей загадки лидером
type AdvanceMode string

const (
	// AdvanceNext — переход к следующей загадке; требует решенной текущей
	AdvanceNext AdvanceMode = "next"
	// AdvanceSkip — пропуск текущей загадки; списывает один скип
	AdvanceSkip AdvanceMode = "skip"
)

// Valid проверяет, что режим один из известных
func (m AdvanceMode) Valid() bool {
	return m == AdvanceNext || m == AdvanceSkip
}

// Коды отказов прогрессии. Машиночитаемый код уходит клиенту в поле "reason",
// обернутый класс определяет HTTP-статус.
var (
	ErrHuntNotActive   = apperrors.NewReason("not_active", apperrors.ErrConflict)
	ErrNotOnTeam       = apperrors.NewReason("not_on_team", apperrors.ErrForbidden)
	ErrNotLeader       = apperrors.NewReason("not_leader", apperrors.ErrForbidden)
	ErrNoSkipsLeft     = apperrors.NewReason("no_skips_left", apperrors.ErrConflict)
	ErrPuzzleUnsolved  = apperrors.NewReason("puzzle_unsolved", apperrors.ErrConflict)
	ErrExhausted       = apperrors.NewReason("exhausted", apperrors.ErrConflict)
	ErrWrongAnswer     = apperrors.NewReason("wrong_answer", apperrors.ErrValidation)
	ErrPuzzleNotViewed = apperrors.NewReason("puzzle_not_viewed", apperrors.ErrConflict)
	ErrMissingAnswer   = apperrors.NewReason("missing_answer", apperrors.ErrValidation)
)

// StateKind — состояние прогресса команды
type StateKind int

const (
	// StateUnassigned — текущей загадки нет, нужна выдача
	StateUnassigned StateKind = iota
	// StateActive — есть текущая нерешенная загадка
	StateActive
	// StateAwaitingAdvance — текущая загадка уже решена, команда ждет перехода
	StateAwaitingAdvance
)

// State — явное состояние прогресса, выведенное из данных команды.
// Раньше это состояние было размазано по current/viewed/solved и приходилось
// каждый раз перепроверять "текущая уже решена?" по месту.
type State struct {
	Kind StateKind
	// PuzzleID задан для StateActive и StateAwaitingAdvance
	PuzzleID uint
}

// StateOf выводит состояние прогресса из данных команды.
// Требует предзагруженной ассоциации SolvedPuzzles.
func StateOf(team *entity.Team) State {
	if team.CurrentPuzzleID == nil {
		return State{Kind: StateUnassigned}
	}
	if team.HasSolved(*team.CurrentPuzzleID) {
		return State{Kind: StateAwaitingAdvance, PuzzleID: *team.CurrentPuzzleID}
	}
	return State{Kind: StateActive, PuzzleID: *team.CurrentPuzzleID}
}
