package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	gosimpleslug "github.com/gosimple/slug"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	"github.com/yourusername/hunt-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// TTL кеша охоты. Охоты редактируются редко, читаются постоянно
// (каждый запрос прогрессии начинается с охоты).
const huntCacheTTL = 5 * time.Minute

// HuntService предоставляет методы для управления охотами и их содержимым:
// загадки, объявления, правила, подсказки
type HuntService struct {
	huntRepo         repository.HuntRepository
	puzzleRepo       repository.PuzzleRepository
	userRepo         repository.UserRepository
	announcementRepo repository.AnnouncementRepository
	ruleRepo         repository.RuleRepository
	hintRepo         repository.HintRepository
	teamRepo         repository.TeamRepository
	cacheRepo        repository.CacheRepository
}

// NewHuntService создает новый сервис охот
func NewHuntService(
	huntRepo repository.HuntRepository,
	puzzleRepo repository.PuzzleRepository,
	userRepo repository.UserRepository,
	announcementRepo repository.AnnouncementRepository,
	ruleRepo repository.RuleRepository,
	hintRepo repository.HintRepository,
	teamRepo repository.TeamRepository,
	cacheRepo repository.CacheRepository,
) *HuntService {
	return &HuntService{
		huntRepo:         huntRepo,
		puzzleRepo:       puzzleRepo,
		userRepo:         userRepo,
		announcementRepo: announcementRepo,
		ruleRepo:         ruleRepo,
		hintRepo:         hintRepo,
		teamRepo:         teamRepo,
		cacheRepo:        cacheRepo,
	}
}

// CreateHuntInput содержит данные для создания охоты
type CreateHuntInput struct {
	Name         string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	PosterImg    string
	SkipsPerTeam int
}

// CreateHunt создает охоту; создатель становится первым организатором
func (s *HuntService) CreateHunt(input CreateHuntInput, creatorID uint) (*entity.Hunt, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: hunt name is required", apperrors.ErrValidation)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", apperrors.ErrValidation)
	}
	if input.SkipsPerTeam < 0 {
		return nil, fmt.Errorf("%w: skips_per_team must not be negative", apperrors.ErrValidation)
	}

	// Slug выводится из названия детерминированно, поэтому дубликат названия
	// ловим заранее, а не ошибкой unique-индекса
	exists, err := s.huntRepo.SlugExists(gosimpleslug.Make(input.Name))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: hunt with this name already exists", apperrors.ErrConflict)
	}

	creator, err := s.userRepo.GetByID(creatorID)
	if err != nil {
		return nil, err
	}

	hunt := &entity.Hunt{
		Name:         input.Name,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		PosterImg:    input.PosterImg,
		SkipsPerTeam: input.SkipsPerTeam,
	}
	if err := s.huntRepo.Create(hunt); err != nil {
		return nil, err
	}
	if err := s.huntRepo.AddOrganizer(hunt.ID, creator); err != nil {
		return nil, err
	}

	log.Printf("[HuntService] Создана охота ID=%d slug=%s организатором ID=%d", hunt.ID, hunt.Slug, creatorID)
	return s.huntRepo.GetByID(hunt.ID)
}

// GetHuntByID возвращает охоту по ID
func (s *HuntService) GetHuntByID(huntID uint) (*entity.Hunt, error) {
	return s.huntRepo.GetByID(huntID)
}

// HuntExists проверяет, существует ли охота с данным slug
func (s *HuntService) HuntExists(slug string) (bool, error) {
	return s.huntRepo.SlugExists(slug)
}

// GetHuntBySlug возвращает охоту по slug, с read-through кешем
func (s *HuntService) GetHuntBySlug(slug string) (*entity.Hunt, error) {
	cacheKey := huntCacheKey(slug)

	var cached entity.Hunt
	if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil && cached.ID != 0 {
		return &cached, nil
	}

	hunt, err := s.huntRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(cacheKey, hunt, huntCacheTTL); err != nil {
		// Кеш недоступен — не повод ронять чтение
		log.Printf("[HuntService] Не удалось закешировать охоту slug=%s: %v", slug, err)
	}
	return hunt, nil
}

// ListHunts возвращает страницу охот
func (s *HuntService) ListHunts(limit, offset int) ([]entity.Hunt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.huntRepo.List(limit, offset)
}

// UpdateHuntInput содержит изменяемые поля охоты; nil-поле не трогается
type UpdateHuntInput struct {
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	PosterImg    *string
	SkipsPerTeam *int
}

// UpdateHunt обновляет охоту. Доступно только организаторам.
// Название (и slug) после создания не меняются.
func (s *HuntService) UpdateHunt(huntID, userID uint, input UpdateHuntInput) (*entity.Hunt, error) {
	hunt, err := s.requireOrganizer(huntID, userID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		hunt.Description = *input.Description
	}
	if input.StartDate != nil {
		hunt.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		hunt.EndDate = *input.EndDate
	}
	if input.PosterImg != nil {
		hunt.PosterImg = *input.PosterImg
	}
	if input.SkipsPerTeam != nil {
		if *input.SkipsPerTeam < 0 {
			return nil, fmt.Errorf("%w: skips_per_team must not be negative", apperrors.ErrValidation)
		}
		hunt.SkipsPerTeam = *input.SkipsPerTeam
	}
	if !hunt.EndDate.After(hunt.StartDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", apperrors.ErrValidation)
	}

	if err := s.huntRepo.Update(hunt); err != nil {
		return nil, err
	}
	s.invalidateHuntCache(hunt.Slug)
	return hunt, nil
}

// DeleteHunt удаляет охоту со всем содержимым. Доступно только организаторам.
func (s *HuntService) DeleteHunt(huntID, userID uint) error {
	hunt, err := s.requireOrganizer(huntID, userID)
	if err != nil {
		return err
	}
	if err := s.huntRepo.Delete(huntID); err != nil {
		return err
	}
	s.invalidateHuntCache(hunt.Slug)
	log.Printf("[HuntService] Охота ID=%d удалена организатором ID=%d", huntID, userID)
	return nil
}

// AddOrganizer добавляет соорганизатора. Доступно только организаторам.
func (s *HuntService) AddOrganizer(huntID, userID, newOrganizerID uint) error {
	if _, err := s.requireOrganizer(huntID, userID); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(newOrganizerID)
	if err != nil {
		return err
	}
	return s.huntRepo.AddOrganizer(huntID, user)
}

// RegisterParticipant записывает пользователя участником охоты.
// Регистрация закрывается после окончания охоты.
func (s *HuntService) RegisterParticipant(huntID, userID uint, now time.Time) error {
	hunt, err := s.huntRepo.GetByID(huntID)
	if err != nil {
		return err
	}
	if hunt.IsAfterEnd(now) {
		return fmt.Errorf("%w: hunt has already ended", apperrors.ErrConflict)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	return s.huntRepo.AddParticipant(huntID, user)
}

// AddHuntImages прикрепляет изображения к охоте. Доступно только организаторам.
func (s *HuntService) AddHuntImages(huntID, userID uint, paths []string) error {
	if _, err := s.requireOrganizer(huntID, userID); err != nil {
		return err
	}
	return s.huntRepo.AddImages(huntID, paths)
}

// ============================================================================
// Загадки
// ============================================================================

// CreatePuzzleInput содержит данные для создания загадки
type CreatePuzzleInput struct {
	Name        string
	Description string
	Answer      string
	Type        string
	Points      int
}

// CreatePuzzle добавляет загадку в охоту. Доступно только организаторам.
// Если очки не заданы, берутся по тегу сложности.
func (s *HuntService) CreatePuzzle(huntID, userID uint, input CreatePuzzleInput) (*entity.Puzzle, error) {
	if _, err := s.requireOrganizer(huntID, userID); err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Answer = strings.TrimSpace(input.Answer)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: puzzle name is required", apperrors.ErrValidation)
	}
	if input.Answer == "" {
		return nil, fmt.Errorf("%w: puzzle answer is required", apperrors.ErrValidation)
	}

	points := input.Points
	if points <= 0 {
		points = entity.DefaultPointsForType(input.Type)
	}
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive or type must be one of easy/medium/hard", apperrors.ErrValidation)
	}

	puzzle := &entity.Puzzle{
		HuntID:      huntID,
		Name:        input.Name,
		Description: input.Description,
		Answer:      input.Answer,
		Type:        input.Type,
		Points:      points,
	}
	if err := s.puzzleRepo.Create(puzzle); err != nil {
		return nil, err
	}

	log.Printf("[HuntService] В охоту ID=%d добавлена загадка ID=%d (%d очков)", huntID, puzzle.ID, points)
	return puzzle, nil
}

// GetPuzzle возвращает загадку по ID
func (s *HuntService) GetPuzzle(puzzleID uint) (*entity.Puzzle, error) {
	return s.puzzleRepo.GetByID(puzzleID)
}

// ListPuzzles возвращает все загадки охоты. Доступно только организаторам:
// участники видят загадки по одной через прогрессию.
func (s *HuntService) ListPuzzles(huntID, userID uint) ([]entity.Puzzle, error) {
	if _, err := s.requireOrganizer(huntID, userID); err != nil {
		return nil, err
	}
	return s.puzzleRepo.ListByHunt(huntID)
}

// UpdatePuzzle обновляет загадку. Доступно только организаторам охоты.
func (s *HuntService) UpdatePuzzle(puzzleID, userID uint, input CreatePuzzleInput) (*entity.Puzzle, error) {
	puzzle, err := s.puzzleRepo.GetByID(puzzleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOrganizer(puzzle.HuntID, userID); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		puzzle.Name = name
	}
	if input.Description != "" {
		puzzle.Description = input.Description
	}
	if answer := strings.TrimSpace(input.Answer); answer != "" {
		puzzle.Answer = answer
	}
	if input.Type != "" {
		puzzle.Type = input.Type
	}
	if input.Points > 0 {
		puzzle.Points = input.Points
	}

	if err := s.puzzleRepo.Update(puzzle); err != nil {
		return nil, err
	}
	return puzzle, nil
}

// DeletePuzzle удаляет загадку. Доступно только организаторам охоты.
func (s *HuntService) DeletePuzzle(puzzleID, userID uint) error {
	puzzle, err := s.puzzleRepo.GetByID(puzzleID)
	if err != nil {
		return err
	}
	if _, err := s.requireOrganizer(puzzle.HuntID, userID); err != nil {
		return err
	}
	return s.puzzleRepo.Delete(puzzleID)
}

// AddPuzzleImages прикрепляет изображения к загадке. Доступно только организаторам.
func (s *HuntService) AddPuzzleImages(puzzleID, userID uint, paths []string) error {
	puzzle, err := s.puzzleRepo.GetByID(puzzleID)
	if err != nil {
		return err
	}
	if _, err := s.requireOrganizer(puzzle.HuntID, userID); err != nil {
		return err
	}
	return s.puzzleRepo.AddImages(puzzleID, paths)
}

// ============================================================================
// Объявления, правила, подсказки
// ============================================================================

// CreateAnnouncement публикует объявление для всех команд охоты.
// Доступно только организаторам.
func (s *HuntService) CreateAnnouncement(huntID, userID uint, text string) (*entity.Announcement, error) {
	if _, err := s.requireOrganizer(huntID, userID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: announcement text is required", apperrors.ErrValidation)
	}

	a := &entity.Announcement{
		HuntID:    huntID,
		Text:      text,
		CreatorID: &userID,
	}
	if err := s.announcementRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnnouncements возвращает объявления охоты, новые первыми
func (s *HuntService) ListAnnouncements(huntID uint) ([]entity.Announcement, error) {
	if _, err := s.huntRepo.GetByID(huntID); err != nil {
		return nil, err
	}
	return s.announcementRepo.ListByHunt(huntID)
}

// CreateRule добавляет правило охоты. Доступно только организаторам.
func (s *HuntService) CreateRule(huntID, userID uint, text string) (*entity.Rule, error) {
	if _, err := s.requireOrganizer(huntID, userID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: rule text is required", apperrors.ErrValidation)
	}

	r := &entity.Rule{HuntID: huntID, Rule: text}
	if err := s.ruleRepo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRules возвращает правила охоты
func (s *HuntService) ListRules(huntID uint) ([]entity.Rule, error) {
	if _, err := s.huntRepo.GetByID(huntID); err != nil {
		return nil, err
	}
	return s.ruleRepo.ListByHunt(huntID)
}

// CreateHint выдает подсказку конкретной команде по конкретной загадке.
// Доступно только организаторам охоты, которой принадлежит загадка.
func (s *HuntService) CreateHint(puzzleID, teamID, userID uint, text string) (*entity.Hint, error) {
	puzzle, err := s.puzzleRepo.GetByID(puzzleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOrganizer(puzzle.HuntID, userID); err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team.HuntID != puzzle.HuntID {
		return nil, fmt.Errorf("%w: team does not belong to this hunt", apperrors.ErrValidation)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: hint text is required", apperrors.ErrValidation)
	}

	h := &entity.Hint{PuzzleID: puzzleID, TeamID: teamID, Text: text}
	if err := s.hintRepo.Create(h); err != nil {
		return nil, err
	}
	log.Printf("[HuntService] Команде #%d выдана подсказка по загадке #%d", teamID, puzzleID)
	return h, nil
}

// ListTeamHints возвращает подсказки команды. Доступно участникам команды
// и организаторам охоты.
func (s *HuntService) ListTeamHints(teamID, userID uint) ([]entity.Hint, error) {
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
			return nil, fmt.Errorf("%w: only team members and organizers can view hints", apperrors.ErrForbidden)
		}
	}
	return s.hintRepo.ListByTeam(teamID)
}

// requireOrganizer возвращает охоту, если пользователь ее организатор
func (s *HuntService) requireOrganizer(huntID, userID uint) (*entity.Hunt, error) {
	hunt, err := s.huntRepo.GetByID(huntID)
	if err != nil {
		return nil, err
	}
	if !hunt.IsOrganizer(userID) {
		return nil, fmt.Errorf("%w: only hunt organizers can do this", apperrors.ErrForbidden)
	}
	return hunt, nil
}

func (s *HuntService) invalidateHuntCache(slug string) {
	if err := s.cacheRepo.Delete(huntCacheKey(slug)); err != nil {
		log.Printf("[HuntService] Не удалось сбросить кеш охоты slug=%s: %v", slug, err)
	}
}

func huntCacheKey(slug string) string {
	return "hunt:slug:" + slug
}
