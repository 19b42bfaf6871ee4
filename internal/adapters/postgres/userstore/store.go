package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/userstore"
)

// Store is a Postgres implementation of userstore.Store. Appends are single
// upsert statements, so a user row springs into existence on first use.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func ownedColumn(dir domain.Direction) string {
	if dir == domain.DirectionFromAirport {
		return "owned_from_airport"
	}
	return "owned_from_campus"
}

func memberColumn(dir domain.Direction) string {
	if dir == domain.DirectionFromAirport {
		return "member_from_airport"
	}
	return "member_from_campus"
}

func (s *Store) AppendOwnedTrip(ctx context.Context, email string, id domain.TripID, dir domain.Direction) error {
	return s.appendTrip(ctx, email, id, ownedColumn(dir))
}

func (s *Store) AppendMemberTrip(ctx context.Context, email string, id domain.TripID, dir domain.Direction) error {
	return s.appendTrip(ctx, email, id, memberColumn(dir))
}

func (s *Store) appendTrip(ctx context.Context, email string, id domain.TripID, column string) error {
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}
	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO users (email, %[1]s) VALUES ($1, ARRAY[$2]::uuid[])
		ON CONFLICT (email)
		DO UPDATE SET %[1]s = array_append(users.%[1]s, $2)
	`, column), email, tripUUID)
	if err != nil {
		return fmt.Errorf("append trip to %s: %w", column, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, email string) (domain.User, error) {
	var (
		u                           domain.User
		ownedCampus, ownedAirport   []uuid.UUID
		memberCampus, memberAirport []uuid.UUID
	)
	err := s.pool.QueryRow(ctx, `
		SELECT email, owned_from_campus, owned_from_airport, member_from_campus, member_from_airport
		FROM users WHERE email = $1
	`, email).Scan(&u.Email, &ownedCampus, &ownedAirport, &memberCampus, &memberAirport)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, userstore.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	u.OwnedTripsFromCampus = toTripIDs(ownedCampus)
	u.OwnedTripsFromAirport = toTripIDs(ownedAirport)
	u.MemberTripsFromCampus = toTripIDs(memberCampus)
	u.MemberTripsFromAirport = toTripIDs(memberAirport)
	return u, nil
}

func toTripIDs(ids []uuid.UUID) []domain.TripID {
	out := make([]domain.TripID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.TripID(id.String()))
	}
	return out
}
