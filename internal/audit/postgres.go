package audit

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"payment-orchestrator/internal/model"
)

// PostgresObserver appends a row per terminal transaction to an audit
// table. It is deliberately fire-and-forget: a write failure is logged,
// never returned, since audit is explicitly out of the critical path
// (spec.md's persistence Non-goal covers the transaction log itself, not
// this optional side channel).
type PostgresObserver struct {
	db *sql.DB
}

// NewPostgresObserver opens a connection pool against databaseURL and
// ensures the audit table exists.
func NewPostgresObserver(databaseURL string) (*PostgresObserver, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping audit database: %w", err)
	}

	o := &PostgresObserver{db: db}
	if err := o.ensureSchema(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *PostgresObserver) ensureSchema() error {
	_, err := o.db.Exec(`
		CREATE TABLE IF NOT EXISTS transaction_audit (
			id SERIAL PRIMARY KEY,
			transaction_id VARCHAR(255) NOT NULL,
			status VARCHAR(32) NOT NULL,
			gateway_used VARCHAR(255),
			commission NUMERIC,
			error_message TEXT,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}
	return nil
}

// Observe implements TransactionObserver.
func (o *PostgresObserver) Observe(txn model.Transaction) {
	_, err := o.db.Exec(
		`INSERT INTO transaction_audit (transaction_id, status, gateway_used, commission, error_message) VALUES ($1, $2, $3, $4, $5)`,
		txn.ID, string(txn.Status), txn.GatewayUsed, txn.Commission.String(), txn.ErrorMessage,
	)
	if err != nil {
		log.Error().Str("transaction_id", txn.ID).Err(err).Msg("failed to write transaction audit record")
	}
}

// Close releases the underlying connection pool.
func (o *PostgresObserver) Close() error {
	return o.db.Close()
}
