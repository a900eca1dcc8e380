package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/padelclub/padel-league/models"
)

var (
	ErrLeagueMatchNotFound      = errors.New("league match not found")
	ErrLeagueMatchPlayerUnknown = errors.New("league match references an unknown player")
)

type LeagueMatchRepository interface {
	Create(ctx context.Context, match *models.LeagueMatch) error
	List(ctx context.Context, limit int) ([]*models.LeagueMatch, error)
	SeasonRanking(ctx context.Context) ([]models.RankingEntry, error)
}

type postgresLeagueMatchRepository struct {
	db *sql.DB
}

func NewPostgresLeagueMatchRepository(db *sql.DB) LeagueMatchRepository {
	return &postgresLeagueMatchRepository{db: db}
}

func (r *postgresLeagueMatchRepository) Create(ctx context.Context, match *models.LeagueMatch) error {
	query := `
		INSERT INTO league_matches
			(shift_id, pair1_a_id, pair1_b_id, pair2_a_id, pair2_b_id, winner_pair, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.ShiftID,
		match.Pair1AID,
		match.Pair1BID,
		match.Pair2AID,
		match.Pair2BID,
		match.WinnerPair,
		match.PlayedAt,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return ErrLeagueMatchPlayerUnknown
		}
		return err
	}
	return nil
}

func (r *postgresLeagueMatchRepository) List(ctx context.Context, limit int) ([]*models.LeagueMatch, error) {
	query := `
		SELECT id, shift_id, pair1_a_id, pair1_b_id, pair2_a_id, pair2_b_id,
		       winner_pair, played_at, created_at
		FROM league_matches
		ORDER BY played_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.LeagueMatch, 0)
	for rows.Next() {
		var m models.LeagueMatch
		if scanErr := rows.Scan(
			&m.ID, &m.ShiftID,
			&m.Pair1AID, &m.Pair1BID, &m.Pair2AID, &m.Pair2BID,
			&m.WinnerPair, &m.PlayedAt, &m.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// SeasonRanking aggregates the points ledger in SQL: every appearance in a
// decided match credits the player, winners at the winning rate and losers
// at the turn-up rate. Ordered by points, then wins, then name for a
// stable display order.
func (r *postgresLeagueMatchRepository) SeasonRanking(ctx context.Context) ([]models.RankingEntry, error) {
	query := `
		WITH appearances AS (
			SELECT pair1_a_id AS player_id, (winner_pair = 1) AS won FROM league_matches
			UNION ALL
			SELECT pair1_b_id, (winner_pair = 1) FROM league_matches
			UNION ALL
			SELECT pair2_a_id, (winner_pair = 2) FROM league_matches
			UNION ALL
			SELECT pair2_b_id, (winner_pair = 2) FROM league_matches
		)
		SELECT p.id, p.name,
		       COALESCE(SUM(CASE WHEN a.won THEN $1 ELSE $2 END), 0) AS points,
		       COALESCE(SUM(CASE WHEN a.won THEN 1 ELSE 0 END), 0)   AS wins,
		       COUNT(a.player_id)                                    AS matches_played
		FROM players p
		LEFT JOIN appearances a ON a.player_id = p.id
		GROUP BY p.id, p.name
		ORDER BY points DESC, wins DESC, p.name ASC`

	rows, err := r.db.QueryContext(ctx, query, models.PointsWin, models.PointsLoss)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranking := make([]models.RankingEntry, 0)
	for rows.Next() {
		var e models.RankingEntry
		if scanErr := rows.Scan(&e.PlayerID, &e.Name, &e.Points, &e.Wins, &e.MatchesPlayed); scanErr != nil {
			return nil, scanErr
		}
		ranking = append(ranking, e)
	}
	return ranking, rows.Err()
}
