package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	"github.com/yourusername/hunt-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
	"github.com/yourusername/hunt-api/internal/service/progression"
)

// ProgressService — контроллер прогрессии охоты: какая загадка у команды
// сейчас, переход/пропуск и проверка ответов. Вся мутация прогресса идет
// через WithLockedTeam, поэтому конкурентные запросы членов одной команды
// сериализуются на строке команды.
type ProgressService struct {
	huntRepo   repository.HuntRepository
	puzzleRepo repository.PuzzleRepository
	teamRepo   repository.TeamRepository
	timeRepo   repository.TimeMaintenanceRepository
	selector   *progression.Selector

	// Источник времени вынесен для тестов
	now func() time.Time
}

// NewProgressService создает новый сервис прогрессии
func NewProgressService(
	huntRepo repository.HuntRepository,
	puzzleRepo repository.PuzzleRepository,
	teamRepo repository.TeamRepository,
	timeRepo repository.TimeMaintenanceRepository,
	selector *progression.Selector,
) *ProgressService {
	return &ProgressService{
		huntRepo:   huntRepo,
		puzzleRepo: puzzleRepo,
		teamRepo:   teamRepo,
		timeRepo:   timeRepo,
		selector:   selector,
		now:        time.Now,
	}
}

// ViewCurrent возвращает текущую загадку команды пользователя.
// Если текущей нет или она уже решена, выдает новую. Повторный вызов при
// активной загадке — идемпотентное чтение: без новой записи леджера,
// без расхода случайности селектора.
func (s *ProgressService) ViewCurrent(huntID, userID uint) (*entity.Puzzle, error) {
	hunt, err := s.huntRepo.GetByID(huntID)
	if err != nil {
		return nil, err
	}
	if !hunt.IsActiveAt(s.now()) {
		return nil, progression.ErrHuntNotActive
	}

	team, err := s.teamRepo.GetByHuntAndUser(huntID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, progression.ErrNotOnTeam
		}
		return nil, err
	}

	if st := progression.StateOf(team); st.Kind == progression.StateActive {
		return s.puzzleRepo.GetByID(st.PuzzleID)
	}

	return s.assignNext(hunt, team.ID)
}

// Advance выдает команде новую загадку по запросу лидера.
// mode=next требует решенной текущей загадки; mode=skip списывает один скип
// и решенности не требует. Исчерпание пула отличимо от отказов валидации.
func (s *ProgressService) Advance(huntID, userID uint, mode progression.AdvanceMode) (*entity.Puzzle, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown advance mode %q", apperrors.ErrValidation, mode)
	}

	hunt, err := s.huntRepo.GetByID(huntID)
	if err != nil {
		return nil, err
	}
	if !hunt.IsActiveAt(s.now()) {
		return nil, progression.ErrHuntNotActive
	}

	team, err := s.teamRepo.GetByHuntAndUser(huntID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, progression.ErrNotOnTeam
		}
		return nil, err
	}
	if !team.IsLeader(userID) {
		return nil, progression.ErrNotLeader
	}

	ids, err := s.puzzleRepo.IDsByHunt(hunt.ID)
	if err != nil {
		return nil, err
	}

	var assigned *entity.Puzzle
	err = s.teamRepo.WithLockedTeam(team.ID, func(tx *gorm.DB, locked *entity.Team) error {
		switch mode {
		case progression.AdvanceNext:
			// Бросать нерешенную загадку нельзя
			if progression.StateOf(locked).Kind != progression.StateAwaitingAdvance {
				return progression.ErrPuzzleUnsolved
			}
		case progression.AdvanceSkip:
			if err := s.teamRepo.DecrementSkip(tx, locked.ID); err != nil {
				if errors.Is(err, repository.ErrNoSkipsLeft) {
					return progression.ErrNoSkipsLeft
				}
				return err
			}
			log.Printf("[ProgressService] Команда #%d потратила скип (загадка #%v)", locked.ID, locked.CurrentPuzzleID)
		}

		puzzle, err := s.assignLocked(tx, hunt, locked, ids)
		if err != nil {
			return err
		}
		assigned = puzzle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// SubmitAnswer проверяет ответ лидера на загадку. При совпадении закрывает
// запись леджера, начисляет очки по времени решения и возвращает их.
// При несовпадении состояние не меняется.
func (s *ProgressService) SubmitAnswer(puzzleID, userID uint, answer string) (int, error) {
	if strings.TrimSpace(answer) == "" {
		return 0, progression.ErrMissingAnswer
	}

	puzzle, err := s.puzzleRepo.GetByID(puzzleID)
	if err != nil {
		return 0, err
	}
	hunt, err := s.huntRepo.GetByID(puzzle.HuntID)
	if err != nil {
		return 0, err
	}

	team, err := s.teamRepo.GetByHuntAndUser(puzzle.HuntID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, progression.ErrNotLeader
		}
		return 0, err
	}
	if !team.IsLeader(userID) {
		return 0, progression.ErrNotLeader
	}

	var awarded int
	err = s.teamRepo.WithLockedTeam(team.ID, func(tx *gorm.DB, locked *entity.Team) error {
		// Невиданную загадку отвечать нельзя
		if !locked.HasViewed(puzzle.ID) {
			return progression.ErrPuzzleNotViewed
		}
		if locked.HasSolved(puzzle.ID) {
			return apperrors.NewReason("puzzle_already_solved", apperrors.ErrConflict)
		}

		if !puzzle.CheckAnswer(answer) {
			return progression.ErrWrongAnswer
		}

		entry, err := s.timeRepo.Close(tx, locked.ID, puzzle.ID, s.now())
		if err != nil {
			return fmt.Errorf("failed to close ledger entry for team #%d puzzle #%d: %w", locked.ID, puzzle.ID, err)
		}

		points := progression.Score(puzzle, hunt, entry)

		if err := s.teamRepo.AppendSolved(tx, locked.ID, puzzle); err != nil {
			return err
		}
		if err := s.teamRepo.AddPoints(tx, locked.ID, points); err != nil {
			return err
		}

		awarded = points
		log.Printf("[ProgressService] Команда #%d решила загадку #%d за %v: +%d очков",
			locked.ID, puzzle.ID, entry.Elapsed().Round(time.Second), points)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return awarded, nil
}

// assignNext выдает команде новую загадку вне уже открытой транзакции
func (s *ProgressService) assignNext(hunt *entity.Hunt, teamID uint) (*entity.Puzzle, error) {
	ids, err := s.puzzleRepo.IDsByHunt(hunt.ID)
	if err != nil {
		return nil, err
	}

	var assigned *entity.Puzzle
	err = s.teamRepo.WithLockedTeam(teamID, func(tx *gorm.DB, locked *entity.Team) error {
		// Под блокировкой состояние перепроверяется: конкурентный запрос
		// другого участника мог уже назначить загадку
		if st := progression.StateOf(locked); st.Kind == progression.StateActive {
			puzzle, err := s.puzzleRepo.GetByID(st.PuzzleID)
			if err != nil {
				return err
			}
			assigned = puzzle
			return nil
		}

		puzzle, err := s.assignLocked(tx, hunt, locked, ids)
		if err != nil {
			return err
		}
		assigned = puzzle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// assignLocked — единица "выбрать — назначить — открыть леджер".
// Вызывается только под блокировкой строки команды.
func (s *ProgressService) assignLocked(tx *gorm.DB, hunt *entity.Hunt, team *entity.Team, huntPuzzleIDs []uint) (*entity.Puzzle, error) {
	id, err := s.selector.Next(team, huntPuzzleIDs)
	if err != nil {
		return nil, err
	}

	puzzle, err := s.puzzleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if team.HasFixedOrder() {
		if err := s.teamRepo.AdvanceCursor(tx, team.ID); err != nil {
			return nil, err
		}
	}
	if err := s.teamRepo.SetCurrentPuzzle(tx, team.ID, &puzzle.ID); err != nil {
		return nil, err
	}
	if err := s.teamRepo.AppendViewed(tx, team.ID, puzzle); err != nil {
		return nil, err
	}
	if err := s.timeRepo.Open(tx, team.ID, puzzle.ID, s.now()); err != nil {
		return nil, err
	}

	log.Printf("[ProgressService] Команде #%d выдана загадка #%d (охота #%d)", team.ID, puzzle.ID, hunt.ID)
	return puzzle, nil
}

// LeaderboardEntry — строка лидерборда охоты
type LeaderboardEntry struct {
	TeamID     uint   `json:"team_id"`
	TeamName   string `json:"team_name"`
	LeaderName string `json:"leader_name"`
	Points     int    `json:"points"`
}

// Leaderboard возвращает команды охоты по убыванию очков.
// Считается заново на каждый запрос, без кеширования.
func (s *ProgressService) Leaderboard(huntID uint) ([]LeaderboardEntry, error) {
	if _, err := s.huntRepo.GetByID(huntID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByHunt(huntID)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, t := range teams {
		leaderName := ""
		if t.Leader != nil {
			leaderName = t.Leader.DisplayName()
		}
		entries = append(entries, LeaderboardEntry{
			TeamID:     t.ID,
			TeamName:   t.Name,
			LeaderName: leaderName,
			Points:     t.Points,
		})
	}
	return entries, nil
}
