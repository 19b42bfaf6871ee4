package tripstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igetback/shuttle-api/internal/adapters/postgres"
	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/dbresult"
	"github.com/igetback/shuttle-api/internal/ports/out/tripstore"
)

// Store is a Postgres implementation of tripstore.Store.
//
// The AddMember capacity check is pushed into a single conditional UPDATE so
// the check and the append are one atomic statement: two concurrent joiners on
// a trip with one seat left can never both append.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func tableFor(dir domain.Direction) string {
	if dir == domain.DirectionFromAirport {
		return "trips_from_airport"
	}
	return "trips_from_campus"
}

const tripColumns = `external_id, owner_email, max_other_members, member_emails,
	trip_date, trip_hour, trip_quarter_hour, trip_name, college, airport,
	created_at, updated_at`

func (s *Store) Create(ctx context.Context, q tripstore.CreateQuery, dir domain.Direction) dbresult.Result[tripstore.Trip] {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			external_id, owner_email, max_other_members, member_emails,
			trip_date, trip_hour, trip_quarter_hour, trip_name, college, airport,
			created_at, updated_at
		) VALUES ($1,$2,$3,'{}',$4,$5,$6,$7,$8,$9,$10,$10)
	`, tableFor(dir)),
		id,
		q.OwnerEmail,
		q.MaxOtherMembers,
		q.TripDate,
		q.TripHour,
		q.TripQuarterHour,
		q.TripName,
		q.College,
		q.Airport,
		q.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.CheckViolationCode {
			return dbresult.Left[tripstore.Trip](dbresult.DBErrorf("insert trip: constraint %s", pe.ConstraintName))
		}
		return dbresult.Left[tripstore.Trip](dbresult.DBErrorf("insert trip: %v", err))
	}
	return dbresult.Right(tripstore.Trip{
		ID:              domain.TripID(id.String()),
		OwnerEmail:      q.OwnerEmail,
		MaxOtherMembers: q.MaxOtherMembers,
		MemberEmails:    []string{},
		TripDate:        q.TripDate,
		TripHour:        q.TripHour,
		TripQuarterHour: q.TripQuarterHour,
		TripName:        q.TripName,
		College:         q.College,
		Airport:         q.Airport,
		CreatedAt:       q.CreatedAt.UTC(),
		UpdatedAt:       q.CreatedAt.UTC(),
	})
}

func (s *Store) GetByID(ctx context.Context, id domain.TripID, dir domain.Direction) dbresult.Result[tripstore.Trip] {
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return dbresult.Left[tripstore.Trip](dbresult.StoreError{Code: dbresult.CodeNotFound})
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE external_id = $1`, tripColumns, tableFor(dir)), tripUUID)
	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbresult.Left[tripstore.Trip](dbresult.StoreError{Code: dbresult.CodeNotFound})
		}
		return dbresult.Left[tripstore.Trip](dbresult.DBErrorf("get trip: %v", err))
	}
	return dbresult.Right(t)
}

func (s *Store) AddMember(ctx context.Context, id domain.TripID, email string, dir domain.Direction) dbresult.Result[bool] {
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return dbresult.Left[bool](dbresult.StoreError{Code: dbresult.CodeNotFound})
	}
	table := tableFor(dir)

	// Check and append in one statement; the WHERE clause re-evaluates the
	// capacity at write time, so the row is applied at most max_other_members
	// times regardless of interleaving.
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET member_emails = array_append(member_emails, $2),
		    updated_at = now()
		WHERE external_id = $1
		  AND cardinality(member_emails) < max_other_members
	`, table), tripUUID, email)
	if err != nil {
		return dbresult.Left[bool](dbresult.DBErrorf("append member: %v", err))
	}
	if tag.RowsAffected() == 1 {
		return dbresult.Right(true)
	}

	// Zero rows: classify as absent trip vs full trip.
	var exists bool
	err = s.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE external_id = $1)`, table), tripUUID).Scan(&exists)
	if err != nil {
		return dbresult.Left[bool](dbresult.DBErrorf("classify failed append: %v", err))
	}
	if !exists {
		return dbresult.Left[bool](dbresult.StoreError{Code: dbresult.CodeNotFound})
	}
	return dbresult.Left[bool](dbresult.StoreError{Code: dbresult.CodeTripFull})
}

func (s *Store) Delete(ctx context.Context, id domain.TripID, requesterEmail string, dir domain.Direction) dbresult.Result[bool] {
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return dbresult.Right(false)
	}
	// Compare-and-delete: ownership is part of the predicate.
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE external_id = $1 AND owner_email = $2`, tableFor(dir)),
		tripUUID, requesterEmail)
	if err != nil {
		return dbresult.Left[bool](dbresult.DBErrorf("delete trip: %v", err))
	}
	return dbresult.Right(tag.RowsAffected() == 1)
}

func (s *Store) Search(ctx context.Context, q tripstore.SearchQuery, dir domain.Direction) dbresult.Result[[]tripstore.Trip] {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE trip_date = $1 AND trip_hour = $2 AND college = $3 AND airport = $4
		ORDER BY external_id
	`, tripColumns, tableFor(dir)),
		q.TripDate, q.TripHour, q.College, q.Airport)
	if err != nil {
		return dbresult.Left[[]tripstore.Trip](dbresult.DBErrorf("search trips: %v", err))
	}
	defer rows.Close()

	out := make([]tripstore.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return dbresult.Left[[]tripstore.Trip](dbresult.DBErrorf("scan trip: %v", err))
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return dbresult.Left[[]tripstore.Trip](dbresult.DBErrorf("search trips: %v", err))
	}
	return dbresult.Right(out)
}

func scanTrip(row pgx.Row) (tripstore.Trip, error) {
	var (
		t  tripstore.Trip
		id uuid.UUID
	)
	err := row.Scan(
		&id,
		&t.OwnerEmail,
		&t.MaxOtherMembers,
		&t.MemberEmails,
		&t.TripDate,
		&t.TripHour,
		&t.TripQuarterHour,
		&t.TripName,
		&t.College,
		&t.Airport,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return tripstore.Trip{}, err
	}
	t.ID = domain.TripID(id.String())
	if t.MemberEmails == nil {
		t.MemberEmails = []string{}
	}
	return t, nil
}
