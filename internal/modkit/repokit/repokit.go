// Package repokit holds the seams repos are written against so they never import a driver
package repokit

import (
	"context"

	"adscope/internal/platform/store"
)

// Queryer is the read and write surface a bound repo runs on
type Queryer = store.RowQuerier

// TxRunner is a Queryer that can also open a transaction
type TxRunner = store.TxRunner

// Binder binds a domain repo to a Queryer, either the pool or a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx binds a repo to a transaction and runs fn with it
func WithTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(T) error) error {
	return tx.Tx(ctx, func(q store.RowQuerier) error { return fn(b.Bind(q)) })
}
