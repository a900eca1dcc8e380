package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/padelclub/padel-league/masters"
	"github.com/padelclub/padel-league/repositories"
	"github.com/padelclub/padel-league/statesync"
)

// saveAttempts bounds the optimistic-concurrency retry loop. Bracket
// commands are cheap pure functions, so re-applying on a stale base is
// safe and quick.
const saveAttempts = 3

// MastersService orchestrates the bracket engine: every command loads the
// aggregate, applies a pure transition and persists the result whole. The
// store broadcasts the new revision; the local mirror is reconciled
// eagerly so the writing process does not wait for its own notification.
type MastersService interface {
	State(ctx context.Context) (statesync.Snapshot, error)
	AddTeam(ctx context.Context, player1, player2 string, group masters.Group) (statesync.Snapshot, error)
	RemoveTeam(ctx context.Context, teamID string) (statesync.Snapshot, error)
	AutoFill(ctx context.Context) (statesync.Snapshot, error)
	StartTournament(ctx context.Context, force bool) (statesync.Snapshot, error)
	StartCrossRound(ctx context.Context, force bool) (statesync.Snapshot, error)
	StartFinals(ctx context.Context, force bool) (statesync.Snapshot, error)
	RecordResult(ctx context.Context, matchID, winnerID string) (statesync.Snapshot, error)
	Reset(ctx context.Context) (statesync.Snapshot, error)
	Podium(ctx context.Context) (masters.Podium, bool, error)
}

type mastersService struct {
	repo       repositories.MastersRepository
	playerRepo repositories.PlayerRepository
	mirror     *statesync.Mirror
	rng        *rand.Rand
}

func NewMastersService(
	repo repositories.MastersRepository,
	playerRepo repositories.PlayerRepository,
	mirror *statesync.Mirror,
) MastersService {
	return &mastersService{
		repo:       repo,
		playerRepo: playerRepo,
		mirror:     mirror,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State serves reads from the local mirror; a cold mirror falls back to
// the store once and warms itself.
func (s *mastersService) State(ctx context.Context) (statesync.Snapshot, error) {
	snap := s.mirror.Snapshot()
	if snap.Revision > 0 {
		return snap, nil
	}
	state, revision, err := s.repo.Load(ctx)
	if err != nil {
		return statesync.Snapshot{}, err
	}
	s.mirror.Reconcile(state, revision)
	return statesync.Snapshot{State: state, Revision: revision}, nil
}

func (s *mastersService) AddTeam(ctx context.Context, player1, player2 string, group masters.Group) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.AddTeam(state, player1, player2, group)
	})
}

func (s *mastersService) RemoveTeam(ctx context.Context, teamID string) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.RemoveTeam(state, teamID)
	})
}

// AutoFill tops the groups up from the eligible-name pool: the registered
// club players merged with whatever names the aggregate's imported pool
// carries.
func (s *mastersService) AutoFill(ctx context.Context) (statesync.Snapshot, error) {
	names, err := s.playerRepo.ListNames(ctx)
	if err != nil {
		return statesync.Snapshot{}, fmt.Errorf("failed to load eligible names: %w", err)
	}

	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		available := slices.Clone(names)
		for _, name := range state.Pool {
			if !slices.Contains(available, name) {
				available = append(available, name)
			}
		}
		return masters.AutoFillGroups(state, available, s.rng)
	})
}

func (s *mastersService) StartTournament(ctx context.Context, force bool) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.StartTournament(state, force)
	})
}

func (s *mastersService) StartCrossRound(ctx context.Context, force bool) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.StartCrossRound(state, force)
	})
}

func (s *mastersService) StartFinals(ctx context.Context, force bool) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.StartFinals(state, force)
	})
}

func (s *mastersService) RecordResult(ctx context.Context, matchID, winnerID string) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.RecordResult(state, matchID, winnerID)
	})
}

func (s *mastersService) Reset(ctx context.Context) (statesync.Snapshot, error) {
	return s.apply(ctx, func(state masters.State) (masters.State, error) {
		return masters.Reset(state), nil
	})
}

func (s *mastersService) Podium(ctx context.Context) (masters.Podium, bool, error) {
	snap, err := s.State(ctx)
	if err != nil {
		return masters.Podium{}, false, err
	}
	podium, ok := masters.ComputePodium(snap.State)
	return podium, ok, nil
}

// apply runs one command against the freshest aggregate and persists the
// replacement whole-object. A concurrent write in between surfaces as a
// stale revision; the command is then re-applied on the new base.
func (s *mastersService) apply(ctx context.Context, op func(masters.State) (masters.State, error)) (statesync.Snapshot, error) {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		state, revision, err := s.repo.Load(ctx)
		if err != nil {
			return statesync.Snapshot{}, err
		}

		next, err := op(state)
		if err != nil {
			return statesync.Snapshot{}, err
		}

		newRevision, err := s.repo.Save(ctx, next, revision)
		if errors.Is(err, repositories.ErrStaleRevision) {
			lastErr = err
			continue
		}
		if err != nil {
			return statesync.Snapshot{}, err
		}

		s.mirror.Reconcile(next, newRevision)
		return statesync.Snapshot{State: next, Revision: newRevision}, nil
	}
	return statesync.Snapshot{}, lastErr
}
