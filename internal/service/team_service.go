package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	"github.com/yourusername/hunt-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// Алфавит и длина пароля для вступления в команду
const (
	joinPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinPasswordLength   = 8
)

// TeamService предоставляет методы для управления командами охоты
type TeamService struct {
	huntRepo repository.HuntRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository

	now func() time.Time
}

// NewTeamService создает новый сервис команд
func NewTeamService(
	huntRepo repository.HuntRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
) *TeamService {
	return &TeamService{
		huntRepo: huntRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateTeam создает команду охоты; создатель становится лидером и участником.
// Пользователь может состоять не более чем в одной команде охоты.
// Команда получает стартовый запас скипов из настроек охоты и
// сгенерированный пароль для вступления.
func (s *TeamService) CreateTeam(huntID, userID uint, name string) (*entity.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", apperrors.ErrValidation)
	}

	hunt, err := s.huntRepo.GetByID(huntID)
	if err != nil {
		return nil, err
	}
	if hunt.IsAfterEnd(s.now()) {
		return nil, fmt.Errorf("%w: hunt has already ended", apperrors.ErrConflict)
	}

	onTeam, err := s.teamRepo.IsUserOnAnyTeam(huntID, userID)
	if err != nil {
		return nil, err
	}
	if onTeam {
		return nil, fmt.Errorf("%w: user is already on a team in this hunt", apperrors.ErrConflict)
	}

	leader, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	password, err := generateJoinPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate joining password: %w", err)
	}

	team := &entity.Team{
		HuntID:          huntID,
		Name:            name,
		LeaderID:        userID,
		RemainingSkips:  hunt.SkipsPerTeam,
		JoiningPassword: password,
	}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, err
	}
	if err := s.teamRepo.AddMember(team.ID, leader); err != nil {
		return nil, err
	}

	log.Printf("[TeamService] Создана команда ID=%d (охота #%d), лидер ID=%d", team.ID, huntID, userID)
	return s.teamRepo.GetByID(team.ID)
}

// JoinTeam добавляет пользователя в команду по паролю для вступления
func (s *TeamService) JoinTeam(huntID, userID uint, password string) (*entity.Team, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return nil, fmt.Errorf("%w: joining password is required", apperrors.ErrValidation)
	}

	hunt, err := s.huntRepo.GetByID(huntID)
	if err != nil {
		return nil, err
	}
	if hunt.IsAfterEnd(s.now()) {
		return nil, fmt.Errorf("%w: hunt has already ended", apperrors.ErrConflict)
	}

	onTeam, err := s.teamRepo.IsUserOnAnyTeam(huntID, userID)
	if err != nil {
		return nil, err
	}
	if onTeam {
		return nil, fmt.Errorf("%w: user is already on a team in this hunt", apperrors.ErrConflict)
	}

	team, err := s.teamRepo.GetByHuntAndPassword(huntID, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid joining password", apperrors.ErrValidation)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.AddMember(team.ID, user); err != nil {
		return nil, err
	}

	log.Printf("[TeamService] Пользователь ID=%d вступил в команду ID=%d", userID, team.ID)
	return s.teamRepo.GetByID(team.ID)
}

// GetTeam возвращает команду. Пароль для вступления видит только лидер.
func (s *TeamService) GetTeam(teamID, userID uint) (*entity.Team, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(userID) && !team.IsLeader(userID) {
		hunt, err := s.huntRepo.GetByID(team.HuntID)
		if err != nil {
			return nil, err
		}
		if !hunt.IsOrganizer(userID) {
			return nil, fmt.Errorf("%w: only team members and organizers can view the team", apperrors.ErrForbidden)
		}
	}
	return team, nil
}

// GetMyTeam возвращает команду пользователя в охоте
func (s *TeamService) GetMyTeam(huntID, userID uint) (*entity.Team, error) {
	return s.teamRepo.GetByHuntAndUser(huntID, userID)
}

// SetPuzzleOrder задает команде фиксированный порядок загадок.
// Доступно только организаторам, пока охота не началась.
func (s *TeamService) SetPuzzleOrder(teamID, userID uint, puzzleIDs []uint) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return err
	}
	hunt, err := s.huntRepo.GetByID(team.HuntID)
	if err != nil {
		return err
	}
	if !hunt.IsOrganizer(userID) {
		return fmt.Errorf("%w: only hunt organizers can set puzzle order", apperrors.ErrForbidden)
	}
	if !hunt.IsBeforeStart(s.now()) {
		return fmt.Errorf("%w: puzzle order can only be set before the hunt starts", apperrors.ErrConflict)
	}

	order := make(pq.Int64Array, 0, len(puzzleIDs))
	for _, id := range puzzleIDs {
		order = append(order, int64(id))
	}
	team.PuzzleOrder = order
	team.OrderCursor = 0
	return s.teamRepo.Update(team)
}

// generateJoinPassword собирает пароль из заглавных латинских букв и цифр
func generateJoinPassword() (string, error) {
	b := make([]byte, joinPasswordLength)
	max := big.NewInt(int64(len(joinPasswordAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = joinPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}
