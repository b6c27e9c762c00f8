package migration

import (
	"context"
	"errors"

	"devconnect/internal/database"
)

// advisoryLockKey serializes schema bootstrap across concurrently starting
// processes pointed at the same database.
const advisoryLockKey = 829441207

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY,
		name          text NOT NULL,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		avatar        text NOT NULL DEFAULT '',
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id              uuid PRIMARY KEY,
		user_id         uuid NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		company         text NOT NULL DEFAULT '',
		website         text NOT NULL DEFAULT '',
		location        text NOT NULL DEFAULT '',
		status          text NOT NULL DEFAULT '',
		bio             text NOT NULL DEFAULT '',
		github_username text NOT NULL DEFAULT '',
		skills          text[] NOT NULL DEFAULT '{}',
		social          jsonb NOT NULL DEFAULT '{}',
		created_at      timestamptz NOT NULL DEFAULT now(),
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profile_education (
		id             uuid PRIMARY KEY,
		profile_id     uuid NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		seq            bigint GENERATED ALWAYS AS IDENTITY,
		school         text NOT NULL,
		degree         text NOT NULL,
		field_of_study text NOT NULL,
		from_date      timestamptz NOT NULL,
		to_date        timestamptz,
		current        boolean NOT NULL DEFAULT false,
		description    text NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS profile_experience (
		id          uuid PRIMARY KEY,
		profile_id  uuid NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		seq         bigint GENERATED ALWAYS AS IDENTITY,
		title       text NOT NULL,
		company     text NOT NULL,
		location    text NOT NULL DEFAULT '',
		from_date   timestamptz NOT NULL,
		to_date     timestamptz,
		current     boolean NOT NULL DEFAULT false,
		description text NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_profile_education_order
		ON profile_education (profile_id, seq DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_profile_experience_order
		ON profile_experience (profile_id, seq DESC)`,
}

// Run applies the schema idempotently. It is executed once at startup,
// after the connection pool has been verified. The xact-scoped advisory
// lock is released automatically on commit or rollback.
func Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey); err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
