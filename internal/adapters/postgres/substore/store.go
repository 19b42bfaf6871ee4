package substore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
)

// Store is a Postgres implementation of substore.Store.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func tableFor(dir domain.Direction) string {
	if dir == domain.DirectionFromAirport {
		return "subscriptions_from_airport"
	}
	return "subscriptions_from_campus"
}

func (s *Store) Create(ctx context.Context, sub domain.Subscription, dir domain.Direction) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (email, college, airport, trip_date, trip_hour, trip_quarter_hour)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, tableFor(dir)),
		sub.Email, sub.College, sub.Airport, sub.TripDate, sub.TripHour, sub.TripQuarterHour)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (s *Store) MatchRecipients(ctx context.Context, q substore.MatchQuery, dir domain.Direction) ([]string, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT email FROM %s
		WHERE college = $1 AND airport = $2 AND trip_date = $3 AND trip_hour = $4
		ORDER BY email
	`, tableFor(dir)),
		q.College, q.Airport, q.TripDate, q.TripHour)
	if err != nil {
		return nil, fmt.Errorf("match subscriptions: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match subscriptions: %w", err)
	}
	return out, nil
}
