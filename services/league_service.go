package services

import (
	"context"
	"time"

	"github.com/padelclub/padel-league/models"
	"github.com/padelclub/padel-league/repositories"
)

const recentMatchesLimit = 50

// LeagueService records weekly doubles matches and serves the season
// ranking derived from the points ledger.
type LeagueService interface {
	RecordMatch(ctx context.Context, match *models.LeagueMatch) error
	RecentMatches(ctx context.Context) ([]*models.LeagueMatch, error)
	SeasonRanking(ctx context.Context) ([]models.RankingEntry, error)
}

type leagueService struct {
	matchRepo repositories.LeagueMatchRepository
}

func NewLeagueService(matchRepo repositories.LeagueMatchRepository) LeagueService {
	return &leagueService{matchRepo: matchRepo}
}

func (s *leagueService) RecordMatch(ctx context.Context, match *models.LeagueMatch) error {
	ids := []int{match.Pair1AID, match.Pair1BID, match.Pair2AID, match.Pair2BID}
	seen := map[int]bool{}
	for _, id := range ids {
		if seen[id] {
			return ErrMatchPlayersNotDistinct
		}
		seen[id] = true
	}
	if match.WinnerPair != 1 && match.WinnerPair != 2 {
		return ErrMatchWinnerPairInvalid
	}
	if match.PlayedAt.IsZero() {
		match.PlayedAt = time.Now()
	}

	return s.matchRepo.Create(ctx, match)
}

func (s *leagueService) RecentMatches(ctx context.Context) ([]*models.LeagueMatch, error) {
	return s.matchRepo.List(ctx, recentMatchesLimit)
}

func (s *leagueService) SeasonRanking(ctx context.Context) ([]models.RankingEntry, error) {
	return s.matchRepo.SeasonRanking(ctx)
}
