package recorder

import (
	"context"
	"fmt"

	"IntradaySentinel/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// PostgresRecorder mirrors the latest batch into a Postgres table.
type PostgresRecorder struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresRecorder connects with the pgx driver and creates the table if needed.
func NewPostgresRecorder(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresRecorder, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	r := &PostgresRecorder{db: db, logger: logger}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("postgres recorder connected")
	return r, nil
}

func (r *PostgresRecorder) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS latest_snapshot (
		position        INTEGER NOT NULL,
		symbol          TEXT PRIMARY KEY,
		current_price   DOUBLE PRECISION NOT NULL,
		buy_signal      BOOLEAN NOT NULL,
		sell_signal     BOOLEAN NOT NULL,
		rsi             DOUBLE PRECISION NOT NULL,
		sma_20          DOUBLE PRECISION NOT NULL,
		bollinger_upper DOUBLE PRECISION NOT NULL,
		bollinger_lower DOUBLE PRECISION NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func (r *PostgresRecorder) Name() string { return "postgres" }

type pgRow struct {
	Position int `db:"position"`
	model.IndicatorSnapshot
}

// RecordBatch replaces the table contents with batch in a single transaction.
func (r *PostgresRecorder) RecordBatch(ctx context.Context, batch model.Batch) error {
	if len(batch) == 0 {
		return nil
	}
	rows := make([]pgRow, len(batch))
	for i, s := range batch {
		rows[i] = pgRow{Position: i, IndicatorSnapshot: s}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM latest_snapshot`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, `INSERT INTO latest_snapshot
		(position, symbol, current_price, buy_signal, sell_signal, rsi, sma_20, bollinger_upper, bollinger_lower)
		VALUES (:position, :symbol, :current_price, :buy_signal, :sell_signal, :rsi, :sma_20, :bollinger_upper, :bollinger_lower)`,
		rows); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return tx.Commit()
}

// Load returns the stored batch in its recorded order.
func (r *PostgresRecorder) Load(ctx context.Context) (model.Batch, error) {
	var batch model.Batch
	err := r.db.SelectContext(ctx, &batch, `SELECT symbol, current_price, buy_signal, sell_signal,
		rsi, sma_20, bollinger_upper, bollinger_lower FROM latest_snapshot ORDER BY position`)
	return batch, err
}

func (r *PostgresRecorder) Close() error {
	r.logger.Info("closing postgres recorder")
	return r.db.Close()
}
