package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keremaydin/acadport/internal/app/models"
)

// RollCounterRepository is the durable sequence counter store backing roll
// number allocation. Each (year, org_unit_number, user_type) key owns an
// independent serial sequence.
type RollCounterRepository struct {
	db *pgxpool.Pool
}

// NewRollCounterRepository creates a new roll counter repository
func NewRollCounterRepository(db *pgxpool.Pool) *RollCounterRepository {
	return &RollCounterRepository{
		db: db,
	}
}

// NextSerial atomically issues the next serial for a counter key.
//
// The insert-or-increment runs as a single statement, so PostgreSQL provides
// the row lock and the read-increment-write atomicity in one shot: concurrent
// callers on the same key serialize on the conflicting row while different
// keys proceed independently. On first use of a key the inserted counter is 1.
// Any failure (lock timeout, connection loss, constraint violation) aborts the
// implicit transaction and leaves the stored counter unchanged.
func (r *RollCounterRepository) NextSerial(ctx context.Context, key models.CounterKey) (int, error) {
	var serial int
	err := r.db.QueryRow(ctx, `
		INSERT INTO roll_number_counters (year, org_unit_number, user_type, counter)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (year, org_unit_number, user_type)
		DO UPDATE SET counter = roll_number_counters.counter + 1, updated_at = now()
		RETURNING counter`,
		key.Year, key.OrgUnitNumber, key.UserType).Scan(&serial)

	if err != nil {
		return 0, fmt.Errorf("error issuing serial for %d/%s/%s: %w",
			key.Year, key.OrgUnitNumber, key.UserType, err)
	}

	return serial, nil
}

// Current returns the counter row for a key, or nil when no serial has been
// issued yet. Read-only; used by operational inspection and tests.
func (r *RollCounterRepository) Current(ctx context.Context, key models.CounterKey) (*models.SequenceCounter, error) {
	query := `
		SELECT year, org_unit_number, user_type, counter, updated_at
		FROM roll_number_counters
		WHERE year = $1 AND org_unit_number = $2 AND user_type = $3
	`

	var counter models.SequenceCounter
	err := r.db.QueryRow(ctx, query, key.Year, key.OrgUnitNumber, key.UserType).Scan(
		&counter.Year,
		&counter.OrgUnitNumber,
		&counter.UserType,
		&counter.Counter,
		&counter.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading counter: %w", err)
	}

	return &counter, nil
}
