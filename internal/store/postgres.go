package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Profiles ---

const profileColumns = `profile_id, display_name, preferences, created_at, updated_at`

func (s *PostgresStore) CreateProfile(ctx context.Context, p *Profile) error {
	prefsJSON, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO haven_profiles (display_name, preferences)
		VALUES ($1, $2)
		RETURNING profile_id, created_at, updated_at`,
		p.DisplayName, prefsJSON,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *PostgresStore) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p := &Profile{}
	var prefsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM haven_profiles WHERE profile_id = $1`, id,
	).Scan(&p.ID, &p.DisplayName, &prefsJSON, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if prefsJSON != nil {
		_ = json.Unmarshal(prefsJSON, &p.Preferences)
	}
	return p, nil
}

func (s *PostgresStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM haven_profiles
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var prefsJSON []byte
		if err := rows.Scan(&p.ID, &p.DisplayName, &prefsJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if prefsJSON != nil {
			_ = json.Unmarshal(prefsJSON, &p.Preferences)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, p *Profile) error {
	prefsJSON, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		UPDATE haven_profiles SET
			display_name = $2, preferences = $3, updated_at = now()
		WHERE profile_id = $1
		RETURNING updated_at`,
		p.ID, p.DisplayName, prefsJSON,
	).Scan(&p.UpdatedAt)
}

func (s *PostgresStore) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM haven_profiles WHERE profile_id = $1`, id)
	return err
}

// --- Listings ---

// City and price are stored as columns for filtering; the full feature record
// lives in the features jsonb and is the source of truth for everything else.
const listingColumns = `listing_id, title, city, price, features, created_at, updated_at`

func (s *PostgresStore) CreateListing(ctx context.Context, l *Listing) error {
	featuresJSON, err := json.Marshal(l.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO haven_listings (title, city, price, features)
		VALUES ($1, $2, $3, $4)
		RETURNING listing_id, created_at, updated_at`,
		l.Title, l.Features.City, l.Features.Price, featuresJSON,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return err
	}
	// Keep the feature record's identifier in sync with the row key.
	l.Features.ID = l.ID
	featuresJSON, _ = json.Marshal(l.Features)
	_, err = s.pool.Exec(ctx, `
		UPDATE haven_listings SET features = $2 WHERE listing_id = $1`,
		l.ID, featuresJSON)
	return err
}

func (s *PostgresStore) GetListing(ctx context.Context, id uuid.UUID) (*Listing, error) {
	l := &Listing{}
	var featuresJSON []byte
	var city string
	var price int
	err := s.pool.QueryRow(ctx, `
		SELECT `+listingColumns+`
		FROM haven_listings WHERE listing_id = $1`, id,
	).Scan(&l.ID, &l.Title, &city, &price, &featuresJSON, &l.CreatedAt, &l.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	hydrateListing(l, city, price, featuresJSON)
	return l, nil
}

func (s *PostgresStore) ListListings(ctx context.Context, filter ListingFilter) ([]*Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM haven_listings WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.City != "" {
		n++
		query += fmt.Sprintf(" AND lower(city) = lower($%d)", n)
		args = append(args, filter.City)
	}
	if filter.MaxPrice > 0 {
		n++
		query += fmt.Sprintf(" AND price <= $%d", n)
		args = append(args, filter.MaxPrice)
	}

	query += " ORDER BY created_at ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*Listing
	for rows.Next() {
		l := &Listing{}
		var featuresJSON []byte
		var city string
		var price int
		if err := rows.Scan(&l.ID, &l.Title, &city, &price, &featuresJSON, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		hydrateListing(l, city, price, featuresJSON)
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (s *PostgresStore) UpdateListing(ctx context.Context, l *Listing) error {
	l.Features.ID = l.ID
	featuresJSON, err := json.Marshal(l.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		UPDATE haven_listings SET
			title = $2, city = $3, price = $4, features = $5, updated_at = now()
		WHERE listing_id = $1
		RETURNING updated_at`,
		l.ID, l.Title, l.Features.City, l.Features.Price, featuresJSON,
	).Scan(&l.UpdatedAt)
}

func (s *PostgresStore) DeleteListing(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM haven_listings WHERE listing_id = $1`, id)
	return err
}

func (s *PostgresStore) GetStats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM haven_profiles),
			(SELECT COUNT(*) FROM haven_listings),
			(SELECT COALESCE(AVG(price), 0) FROM haven_listings),
			(SELECT COUNT(DISTINCT lower(city)) FROM haven_listings)`,
	).Scan(&stats.TotalProfiles, &stats.TotalListings, &stats.AvgListingPrice, &stats.DistinctCities)
	return stats, err
}

func hydrateListing(l *Listing, city string, price int, featuresJSON []byte) {
	if featuresJSON != nil {
		_ = json.Unmarshal(featuresJSON, &l.Features)
	}
	l.Features.ID = l.ID
	l.Features.City = city
	l.Features.Price = price
}
