package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"
)

// Códigos SQLSTATE tratados pela camada de persistência.
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
)

// Querier é o subconjunto comum de *sql.DB e *sql.Tx usado pelos repositórios.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// WithTx anexa tx ao contexto.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext devolve a transação em andamento, se houver.
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// Conn devolve a transação do contexto ou, fora de uma transação, o próprio pool.
func Conn(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// TxManager executa sequências ler-validar-escrever sob travas por agregado.
//
// Cada chave vira um pg_advisory_xact_lock, liberado no commit ou rollback.
// A transação é SERIALIZABLE; falhas de serialização e deadlocks são
// repetidas até maxRetries vezes.
type TxManager struct {
	db         *sql.DB
	maxRetries uint64
	backoff    time.Duration
}

// NewTxManager cria o gerenciador. maxRetries = 0 desativa as repetições.
func NewTxManager(db *sql.DB, maxRetries int) *TxManager {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &TxManager{db: db, maxRetries: uint64(maxRetries), backoff: 20 * time.Millisecond}
}

// WithinLock executa fn numa transação com as travas de keys.
// Dentro de uma transação já aberta, apenas toma as travas e reaproveita a transação.
func (m *TxManager) WithinLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	if tx, ok := TxFromContext(ctx); ok {
		if err := acquireLocks(ctx, tx, keys); err != nil {
			return err
		}
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewExponential(m.backoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := m.runOnce(ctx, keys, fn)
		if IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (m *TxManager) runOnce(ctx context.Context, keys []string, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = acquireLocks(ctx, tx, keys); err != nil {
		return err
	}

	if err = fn(WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}
	return nil
}

func acquireLocks(ctx context.Context, tx *sql.Tx, keys []string) error {
	for _, key := range SortedKeys(keys) {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			return fmt.Errorf("falha ao travar %s: %w", key, err)
		}
	}
	return nil
}

// SortedKeys ordena e remove duplicatas, fixando a ordem de aquisição das travas.
func SortedKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PQCode devolve o SQLSTATE de um erro do driver, ou "" se não houver.
func PQCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsRetryable indica conflitos de concorrência que podem ser repetidos.
func IsRetryable(err error) bool {
	switch PQCode(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	return false
}

// IsUniqueViolation indica violação de restrição UNIQUE.
func IsUniqueViolation(err error) bool {
	return PQCode(err) == CodeUniqueViolation
}
