package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kencs/dietadvisor-backend/internal/domain"
)

// uniqueViolation is the SQLSTATE code for a unique constraint violation
const uniqueViolation = "23505"

// PostgresProfileRepository implements ProfileRepository on a single
// JSONB-document table keyed by provider id. The primary key on
// provider_id enforces at-most-one-profile-per-identity at the storage
// layer, so two concurrent creates cannot both succeed.
type PostgresProfileRepository struct {
	db      *pgxpool.Pool
	workers chan struct{}
}

// NewPostgresProfileRepository creates a new PostgreSQL profile
// repository. maxWorkers bounds how many store calls may be in flight
// at once so blocking driver calls cannot starve request handling.
func NewPostgresProfileRepository(db *pgxpool.Pool, maxWorkers int) ProfileRepository {
	if maxWorkers <= 0 {
		maxWorkers = 5 // Default to 5 workers
	}

	return &PostgresProfileRepository{
		db:      db,
		workers: make(chan struct{}, maxWorkers),
	}
}

// acquire takes a worker slot, honoring context cancellation while waiting
func (r *PostgresProfileRepository) acquire(ctx context.Context) error {
	select {
	case r.workers <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for store worker: %w", ctx.Err())
	}
}

// release returns a worker slot to the pool
func (r *PostgresProfileRepository) release() {
	<-r.workers
}

// Exists reports whether a profile for the provider id is stored
func (r *PostgresProfileRepository) Exists(ctx context.Context, providerID string) (bool, error) {
	if err := r.acquire(ctx); err != nil {
		return false, err
	}
	defer r.release()

	query := `SELECT count(*) FROM profiles WHERE provider_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, providerID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}

	return count > 0, nil
}

// Create inserts a new profile document
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if err := r.acquire(ctx); err != nil {
		return err
	}
	defer r.release()

	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
		INSERT INTO profiles (provider_id, doc)
		VALUES ($1, $2)
	`

	if _, err := r.db.Exec(ctx, query, profile.ProviderID, doc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Get returns the stored profile for the provider id
func (r *PostgresProfileRepository) Get(ctx context.Context, providerID string) (*domain.Profile, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.release()

	query := `SELECT doc FROM profiles WHERE provider_id = $1`

	var doc []byte
	if err := r.db.QueryRow(ctx, query, providerID).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return decodeProfile(doc)
}

// Replace swaps the entire stored document, returning the previous one
func (r *PostgresProfileRepository) Replace(ctx context.Context, providerID string, profile *domain.Profile) (*domain.Profile, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.release()

	doc, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	// Returns the pre-replace document in one round trip
	query := `
		WITH prev AS (
			SELECT doc FROM profiles WHERE provider_id = $1
		)
		UPDATE profiles
		SET doc = $2, updated_at = CURRENT_TIMESTAMP
		WHERE provider_id = $1
		RETURNING (SELECT doc FROM prev)
	`

	var prevDoc []byte
	if err := r.db.QueryRow(ctx, query, providerID, doc).Scan(&prevDoc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to replace profile: %w", err)
	}

	return decodeProfile(prevDoc)
}

// Delete removes the stored document, returning it
func (r *PostgresProfileRepository) Delete(ctx context.Context, providerID string) (*domain.Profile, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.release()

	query := `DELETE FROM profiles WHERE provider_id = $1 RETURNING doc`

	var doc []byte
	if err := r.db.QueryRow(ctx, query, providerID).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to delete profile: %w", err)
	}

	return decodeProfile(doc)
}

// decodeProfile translates a stored document back to the domain shape.
// Unknown fields in the document (future schema additions) are ignored
// rather than treated as a decode failure.
func decodeProfile(doc []byte) (*domain.Profile, error) {
	profile := &domain.Profile{}
	if err := json.Unmarshal(doc, profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return profile, nil
}
