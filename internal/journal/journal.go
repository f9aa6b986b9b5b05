// Package journal keeps a local SQLite record of submitted orders and
// observed balances. The desk works without it; recording failures are
// the caller's to log and ignore.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal file and migrates the schema.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite is happiest with a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL,
			side TEXT NOT NULL,
			amount INTEGER NOT NULL,
			price INTEGER NOT NULL,
			ts TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS balances (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			coin_type TEXT NOT NULL,
			amount INTEGER NOT NULL,
			ts TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_balances_coin_ts ON balances(coin_type, ts)`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate journal: %w", err)
		}
	}
	return nil
}

// OrderEntry is one journaled order submission.
type OrderEntry struct {
	OrderID uint64    `json:"order_id"`
	Side    string    `json:"side"`
	Amount  uint64    `json:"amount"`
	Price   uint64    `json:"price"`
	TS      time.Time `json:"ts"`
}

// RecordOrder appends a submitted order.
func (j *Journal) RecordOrder(ctx context.Context, side string, amount, price, orderID uint64) error {
	_, err := j.db.ExecContext(ctx, `
INSERT INTO orders (order_id, side, amount, price, ts)
VALUES (?,?,?,?,?)
`, orderID, side, amount, price, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// RecordBalance appends a balance observation for one coin type.
func (j *Journal) RecordBalance(ctx context.Context, coinType string, amount uint64) error {
	_, err := j.db.ExecContext(ctx, `
INSERT INTO balances (coin_type, amount, ts)
VALUES (?,?,?)
`, coinType, amount, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

// RecentOrders returns the latest journaled orders, newest first.
func (j *Journal) RecentOrders(ctx context.Context, limit int) ([]OrderEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := j.db.QueryContext(ctx, `
SELECT order_id, side, amount, price, ts
FROM orders
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderEntry
	for rows.Next() {
		var (
			e  OrderEntry
			ts string
		)
		if err := rows.Scan(&e.OrderID, &e.Side, &e.Amount, &e.Price, &ts); err != nil {
			return nil, err
		}
		e.TS, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
