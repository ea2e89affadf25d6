package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// SentinelEntityName - имя сентинельных записей каталога ("нет аффилиации").
// Профили без выбранной партии/команды ссылаются на них, чтобы фильтры
// агрегации не имели дела с NULL.
const SentinelEntityName = "Ninguno"

// CatalogService предоставляет методы для работы с каталогом сущностей
type CatalogService struct {
	partyRepo repository.PartyRepository
	teamRepo  repository.TeamRepository
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(partyRepo repository.PartyRepository, teamRepo repository.TeamRepository) *CatalogService {
	return &CatalogService{
		partyRepo: partyRepo,
		teamRepo:  teamRepo,
	}
}

// CreateParty создает новую партию
func (s *CatalogService) CreateParty(name string) (*entity.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: party name is required", apperrors.ErrValidation)
	}
	party := &entity.Party{Name: name}
	if err := s.partyRepo.Create(party); err != nil {
		return nil, err
	}
	return party, nil
}

// ListParties возвращает все партии
func (s *CatalogService) ListParties() ([]entity.Party, error) {
	return s.partyRepo.List()
}

// DeleteParty удаляет партию. Сущность, на которую ссылаются вопросы или
// пользователи, удалить нельзя - ограничение обеспечивает БД.
func (s *CatalogService) DeleteParty(id uint) error {
	return s.partyRepo.Delete(id)
}

// CreateTeam создает новую команду
func (s *CatalogService) CreateTeam(name string) (*entity.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", apperrors.ErrValidation)
	}
	team := &entity.Team{Name: name}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, err
	}
	return team, nil
}

// ListTeams возвращает все команды
func (s *CatalogService) ListTeams() ([]entity.Team, error) {
	return s.teamRepo.List()
}

// DeleteTeam удаляет команду
func (s *CatalogService) DeleteTeam(id uint) error {
	return s.teamRepo.Delete(id)
}

// EntityNames возвращает отображение id -> имя для сущностей модуля.
// Используется презентером группировки.
func (s *CatalogService) EntityNames(module entity.Module) (map[uint]string, error) {
	names := make(map[uint]string)
	if module == entity.ModulePolitics {
		parties, err := s.partyRepo.List()
		if err != nil {
			return nil, err
		}
		for _, p := range parties {
			names[p.ID] = p.Name
		}
		return names, nil
	}

	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

// SentinelParty возвращает сентинельную партию "Ninguno"
func (s *CatalogService) SentinelParty() (*entity.Party, error) {
	return s.partyRepo.GetByName(SentinelEntityName)
}

// SentinelTeam возвращает сентинельную команду "Ninguno"
func (s *CatalogService) SentinelTeam() (*entity.Team, error) {
	return s.teamRepo.GetByName(SentinelEntityName)
}
