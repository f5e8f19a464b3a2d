package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"IntradaySentinel/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder mirrors the latest batch into a SQLite table so dashboards can query it.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers are not blocked while a batch is replaced.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS latest_snapshot (
			position        INTEGER NOT NULL,
			symbol          TEXT PRIMARY KEY,
			current_price   REAL NOT NULL,
			buy_signal      INTEGER NOT NULL,
			sell_signal     INTEGER NOT NULL,
			rsi             REAL NOT NULL,
			sma_20          REAL NOT NULL,
			bollinger_upper REAL NOT NULL,
			bollinger_lower REAL NOT NULL,
			updated_at      INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Name() string { return "sqlite" }

// RecordBatch replaces the table contents with batch in a single transaction.
func (r *SQLiteRecorder) RecordBatch(ctx context.Context, batch model.Batch) error {
	if len(batch) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM latest_snapshot`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	now := time.Now().Unix()
	for i, s := range batch {
		_, err := tx.ExecContext(ctx, `INSERT INTO latest_snapshot
			(position, symbol, current_price, buy_signal, sell_signal, rsi, sma_20,
			 bollinger_upper, bollinger_lower, updated_at)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			i, s.Symbol, s.CurrentPrice, s.Buy, s.Sell, s.RSI, s.SMA20,
			s.BollingerUpper, s.BollingerLower, now,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", s.Symbol, err)
		}
	}
	return tx.Commit()
}

// Load returns the stored batch in its recorded order.
func (r *SQLiteRecorder) Load(ctx context.Context) (model.Batch, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT symbol, current_price, buy_signal, sell_signal,
		rsi, sma_20, bollinger_upper, bollinger_lower
		FROM latest_snapshot ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch model.Batch
	for rows.Next() {
		var s model.IndicatorSnapshot
		if err := rows.Scan(&s.Symbol, &s.CurrentPrice, &s.Buy, &s.Sell,
			&s.RSI, &s.SMA20, &s.BollingerUpper, &s.BollingerLower); err != nil {
			return nil, err
		}
		batch = append(batch, s)
	}
	return batch, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
