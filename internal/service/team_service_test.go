package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

func newTestTeamService(huntRepo *MockHuntRepository, teamRepo *MockTeamRepository, userRepo *MockUserRepository, now time.Time) *TeamService {
	svc := NewTeamService(huntRepo, teamRepo, userRepo)
	svc.now = func() time.Time { return now }
	return svc
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func TestTeamService_CreateTeam_Success(t *testing.T) {
	// Arrange
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockUserRepo := new(MockUserRepository)

	hunt := activeHunt(now)
	hunt.SkipsPerTeam = 5
	leader := &entity.User{ID: 10, Username: "petya"}

	mockHuntRepo.On("GetByID", uint(1)).Return(hunt, nil)
	mockTeamRepo.On("IsUserOnAnyTeam", uint(1), uint(10)).Return(false, nil)
	mockUserRepo.On("GetByID", uint(10)).Return(leader, nil)

	var created *entity.Team
	mockTeamRepo.On("Create", mock.AnythingOfType("*entity.Team")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*entity.Team)
		created.ID = 5
	}).Return(nil)
	mockTeamRepo.On("AddMember", uint(5), leader).Return(nil)
	mockTeamRepo.On("GetByID", uint(5)).Return(&entity.Team{ID: 5, HuntID: 1, Name: "Еноты", LeaderID: 10}, nil)

	svc := newTestTeamService(mockHuntRepo, mockTeamRepo, mockUserRepo, now)

	// Act
	team, err := svc.CreateTeam(1, 10, "  Еноты ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(5), team.ID)
	require.NotNil(t, created)
	assert.Equal(t, "Еноты", created.Name)
	assert.Equal(t, uint(10), created.LeaderID)
	// Запас скипов приходит из настроек охоты
	assert.Equal(t, 5, created.RemainingSkips)
	// Пароль вступления: 8 символов из A-Z и 0-9
	require.Len(t, created.JoiningPassword, 8)
	for _, c := range created.JoiningPassword {
		assert.True(t, strings.ContainsRune(joinPasswordAlphabet, c),
			"Недопустимый символ в пароле: %q", c)
	}
	mockTeamRepo.AssertExpectations(t)
}

func TestTeamService_CreateTeam_AlreadyOnTeam(t *testing.T) {
	// Arrange: одна команда на пользователя в рамках охоты
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)
	mockTeamRepo := new(MockTeamRepository)

	mockHuntRepo.On("GetByID", uint(1)).Return(activeHunt(now), nil)
	mockTeamRepo.On("IsUserOnAnyTeam", uint(1), uint(10)).Return(true, nil)

	svc := newTestTeamService(mockHuntRepo, mockTeamRepo, new(MockUserRepository), now)

	// Act
	_, err := svc.CreateTeam(1, 10, "Еноты")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockTeamRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTeamService_CreateTeam_HuntEnded(t *testing.T) {
	// Arrange
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)

	ended := &entity.Hunt{
		ID:        1,
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(-1 * time.Hour),
	}
	mockHuntRepo.On("GetByID", uint(1)).Return(ended, nil)

	svc := newTestTeamService(mockHuntRepo, new(MockTeamRepository), new(MockUserRepository), now)

	// Act
	_, err := svc.CreateTeam(1, 10, "Опоздавшие")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestTeamService_JoinTeam_Success(t *testing.T) {
	// Arrange
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockUserRepo := new(MockUserRepository)

	team := &entity.Team{ID: 5, HuntID: 1, Name: "Еноты", LeaderID: 10}
	joiner := &entity.User{ID: 11, Username: "masha"}

	mockHuntRepo.On("GetByID", uint(1)).Return(activeHunt(now), nil)
	mockTeamRepo.On("IsUserOnAnyTeam", uint(1), uint(11)).Return(false, nil)
	mockTeamRepo.On("GetByHuntAndPassword", uint(1), "ABC123XY").Return(team, nil)
	mockUserRepo.On("GetByID", uint(11)).Return(joiner, nil)
	mockTeamRepo.On("AddMember", uint(5), joiner).Return(nil)
	mockTeamRepo.On("GetByID", uint(5)).Return(team, nil)

	svc := newTestTeamService(mockHuntRepo, mockTeamRepo, mockUserRepo, now)

	// Act
	got, err := svc.JoinTeam(1, 11, "ABC123XY")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.ID)
	mockTeamRepo.AssertExpectations(t)
}

func TestTeamService_JoinTeam_WrongPassword(t *testing.T) {
	// Arrange
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)
	mockTeamRepo := new(MockTeamRepository)

	mockHuntRepo.On("GetByID", uint(1)).Return(activeHunt(now), nil)
	mockTeamRepo.On("IsUserOnAnyTeam", uint(1), uint(11)).Return(false, nil)
	mockTeamRepo.On("GetByHuntAndPassword", uint(1), "WRONG000").Return(nil, apperrors.ErrNotFound)

	svc := newTestTeamService(mockHuntRepo, mockTeamRepo, new(MockUserRepository), now)

	// Act
	_, err := svc.JoinTeam(1, 11, "WRONG000")

	// Assert: существование команды не раскрывается
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockTeamRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
}

func TestTeamService_SetPuzzleOrder_OnlyBeforeStart(t *testing.T) {
	// Arrange: охота уже идет, порядок менять поздно
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)
	mockTeamRepo := new(MockTeamRepository)

	hunt := activeHunt(now)
	hunt.Organizers = []entity.User{{ID: 1}}
	team := &entity.Team{ID: 5, HuntID: 1}

	mockTeamRepo.On("GetByID", uint(5)).Return(team, nil)
	mockHuntRepo.On("GetByID", uint(1)).Return(hunt, nil)

	svc := newTestTeamService(mockHuntRepo, mockTeamRepo, new(MockUserRepository), now)

	// Act
	err := svc.SetPuzzleOrder(5, 1, []uint{3, 1, 2})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockTeamRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestTeamService_SetPuzzleOrder_Success(t *testing.T) {
	// Arrange: до старта организатор задает фиксированный порядок
	now := time.Now()
	mockHuntRepo := new(MockHuntRepository)
	mockTeamRepo := new(MockTeamRepository)

	hunt := &entity.Hunt{
		ID:         1,
		StartDate:  now.Add(1 * time.Hour),
		EndDate:    now.Add(2 * time.Hour),
		Organizers: []entity.User{{ID: 1}},
	}
	team := &entity.Team{ID: 5, HuntID: 1}

	mockTeamRepo.On("GetByID", uint(5)).Return(team, nil)
	mockHuntRepo.On("GetByID", uint(1)).Return(hunt, nil)
	mockTeamRepo.On("Update", mock.AnythingOfType("*entity.Team")).Return(nil)

	svc := newTestTeamService(mockHuntRepo, mockTeamRepo, new(MockUserRepository), now)

	// Act
	err := svc.SetPuzzleOrder(5, 1, []uint{3, 1, 2})

	// Assert
	require.NoError(t, err)
	require.Len(t, team.PuzzleOrder, 3)
	assert.Equal(t, int64(3), team.PuzzleOrder[0])
	assert.Equal(t, 0, team.OrderCursor)
	mockTeamRepo.AssertExpectations(t)
}
