package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/padelclub/padel-league/masters"
)

// MastersChannel is the Postgres notification channel carrying aggregate
// revisions to every listening server process.
const MastersChannel = "masters_state"

// ErrStaleRevision means the aggregate changed since the caller loaded it;
// the caller must re-read and re-apply its command.
var ErrStaleRevision = errors.New("masters state was modified concurrently")

// MastersRepository persists the whole Masters aggregate as one logical
// row, guarded by a monotonically increasing revision.
type MastersRepository interface {
	Load(ctx context.Context) (masters.State, int64, error)
	Save(ctx context.Context, state masters.State, baseRevision int64) (int64, error)
}

type postgresMastersRepository struct {
	db *sql.DB
}

func NewPostgresMastersRepository(db *sql.DB) MastersRepository {
	return &postgresMastersRepository{db: db}
}

// Load returns the stored aggregate and its revision. A missing row is the
// pristine empty aggregate at revision zero, so first use needs no seed.
func (r *postgresMastersRepository) Load(ctx context.Context) (masters.State, int64, error) {
	query := `SELECT revision, state FROM masters_state WHERE id = 1`

	var revision int64
	var raw []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&revision, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return masters.NewState(nil), 0, nil
		}
		return masters.State{}, 0, err
	}

	var state masters.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return masters.State{}, 0, fmt.Errorf("failed to decode masters state: %w", err)
	}
	return state, revision, nil
}

// Save replaces the aggregate whole-object, but only when baseRevision is
// still current (optimistic concurrency). On success the new revision is
// published on MastersChannel so mirrors in every process reconcile.
func (r *postgresMastersRepository) Save(ctx context.Context, state masters.State, baseRevision int64) (int64, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("failed to encode masters state: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO masters_state (id, revision, state)
		VALUES (1, 1, $1)
		ON CONFLICT (id) DO UPDATE
		SET revision = masters_state.revision + 1,
		    state = excluded.state,
		    updated_at = now()
		WHERE masters_state.revision = $2
		RETURNING revision`

	var revision int64
	err = tx.QueryRowContext(ctx, query, raw, baseRevision).Scan(&revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrStaleRevision
		}
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_notify($1, $2::text)`, MastersChannel, revision); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return revision, nil
}
