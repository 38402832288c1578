package repo

import (
	"context"
	"database/sql"
	_ "embed"

	_ "github.com/lib/pq"
	"signupweb/gen/signupweb/public/model"

	. "github.com/go-jet/jet/v2/postgres"
	. "signupweb/gen/signupweb/public/table"
)

// The gen/signupweb package mirrors schema.sql; regenerate it against a database created from it.
//go:generate jet -dsn=postgresql://localhost:5432/signupweb?sslmode=disable -schema=public -path=../../gen

//go:embed schema.sql
var schema string

// Repository records sign-up attempts and their outcomes.
type Repository interface {
	RecordAttempt(ctx context.Context, requestID, email, outcome string) (model.SignupAttempts, error)
	RecentAttempts(ctx context.Context, email string, limit int64) ([]model.SignupAttempts, error)
}

func New(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// Open connects to Postgres and makes sure the schema exists.
func Open(ctx context.Context, databaseUrl string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseUrl)
	if err != nil {
		return nil, err
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type repository struct {
	db *sql.DB
}

func (r *repository) RecordAttempt(ctx context.Context, requestID, email, outcome string) (model.SignupAttempts, error) {
	var result model.SignupAttempts

	stmt := insertAttempt(requestID, email, outcome)
	if err := stmt.QueryContext(ctx, r.db, &result); err != nil {
		return result, err
	}

	return result, nil
}

func (r *repository) RecentAttempts(ctx context.Context, email string, limit int64) ([]model.SignupAttempts, error) {
	stmt := recentAttempts(email, limit)

	var results []model.SignupAttempts
	if err := stmt.QueryContext(ctx, r.db, &results); err != nil {
		return nil, err
	}

	if results == nil {
		results = make([]model.SignupAttempts, 0)
	}

	return results, nil
}

func insertAttempt(requestID, email, outcome string) InsertStatement {
	return SignupAttempts.INSERT(SignupAttempts.RequestID, SignupAttempts.Email, SignupAttempts.Outcome).
		VALUES(requestID, email, outcome).
		RETURNING(SignupAttempts.AllColumns)
}

func recentAttempts(email string, limit int64) SelectStatement {
	return SignupAttempts.SELECT(SignupAttempts.AllColumns).
		WHERE(SignupAttempts.Email.EQ(String(email))).
		ORDER_BY(SignupAttempts.CreatedAt.DESC()).
		LIMIT(limit)
}

// Noop is used when no database is configured.
type Noop struct{}

func (Noop) RecordAttempt(ctx context.Context, requestID, email, outcome string) (model.SignupAttempts, error) {
	return model.SignupAttempts{RequestID: requestID, Email: email, Outcome: outcome}, nil
}

func (Noop) RecentAttempts(ctx context.Context, email string, limit int64) ([]model.SignupAttempts, error) {
	return make([]model.SignupAttempts, 0), nil
}
