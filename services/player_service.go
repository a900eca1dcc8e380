package services

import (
	"context"
	"strings"

	"github.com/padelclub/padel-league/models"
	"github.com/padelclub/padel-league/repositories"
)

type PlayerService interface {
	Register(ctx context.Context, name string, phone *string) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Delete(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) Register(ctx context.Context, name string, phone *string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{Name: name, Phone: phone}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]*models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	return s.playerRepo.Delete(ctx, id)
}
