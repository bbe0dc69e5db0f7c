package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// sqliteStore keeps one row per prescription with the record as a JSON
// payload, so both backends share the same on-disk record shape.
type sqliteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

func openSQLite(path string, busyTimeout time.Duration, log zerolog.Logger) (*sqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if busyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("opened sqlite store")
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) List(ctx context.Context, user string) ([]prescription.Prescription, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, payload FROM prescriptions WHERE user = ?`, user)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []prescription.Prescription
	for rows.Next() {
		var name, payload string
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, err
		}
		rx, err := decodeRecord(name, payload)
		if err != nil {
			s.log.Warn().Err(err).Str("user", user).Str("prescription", name).Msg("skipping unreadable record")
			continue
		}
		out = append(out, rx)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Get(ctx context.Context, user, name string) (prescription.Prescription, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM prescriptions WHERE user = ? AND name = ?`, user, name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return prescription.Prescription{}, prescription.ErrNotFound
	}
	if err != nil {
		return prescription.Prescription{}, err
	}
	return decodeRecord(name, payload)
}

func (s *sqliteStore) Put(ctx context.Context, user string, rx prescription.Prescription) error {
	payload, err := json.Marshal(rx)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prescriptions(user, name, payload, updated_at) VALUES(?,?,?,?)
		 ON CONFLICT(user, name) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		user, rx.Name, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	s.log.Debug().Str("user", user).Str("prescription", rx.Name).Msg("saved")
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, user, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE user = ? AND name = ?`, user, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return prescription.ErrNotFound
	}
	return nil
}

func decodeRecord(name, payload string) (prescription.Prescription, error) {
	var rx prescription.Prescription
	if err := json.Unmarshal([]byte(payload), &rx); err != nil {
		return prescription.Prescription{}, err
	}
	rx.Name = name
	return rx, nil
}
