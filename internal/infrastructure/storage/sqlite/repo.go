package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
	"fxwatch/internal/infrastructure/storage"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS snapshots (
  snap_key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
`)
	return err
}

func (r *Repo) Get(ctx context.Context, key string) (domain.Quote, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE snap_key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quote{}, false, nil
	}
	if err != nil {
		return domain.Quote{}, false, err
	}
	q, err := storage.Decode(key, v)
	if err != nil {
		return domain.Quote{}, false, err
	}
	return q, true, nil
}

func (r *Repo) Put(ctx context.Context, key string, q domain.Quote) error {
	v, err := storage.Encode(q)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots(snap_key, value, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(snap_key) DO UPDATE SET
		value=excluded.value, updated_at=excluded.updated_at
	`, key, v, time.Now().UnixMilli())
	return err
}

func (r *Repo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE snap_key=?`, key)
	return err
}

// Keys lists every stored key, oldest write first.
func (r *Repo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT snap_key FROM snapshots ORDER BY updated_at, snap_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

var (
	_ port.SnapshotStore  = (*Repo)(nil)
	_ port.SnapshotLister = (*Repo)(nil)
)
