package repokit

import (
	"context"
	"errors"
	"testing"

	"adscope/internal/platform/store"
)

type fakeTx struct {
	txs   int
	inner store.RowQuerier
}

func (f *fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (f *fakeTx) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	f.txs++
	return fn(f.inner)
}

type txQ struct{ store.RowQuerier }

type boundRepo struct{ q Queryer }

func TestWithTx_BindsToTransaction(t *testing.T) {
	inner := txQ{}
	tx := &fakeTx{inner: inner}
	b := BindFunc[boundRepo](func(q Queryer) boundRepo { return boundRepo{q: q} })

	var seen Queryer
	err := WithTx(context.Background(), tx, b, func(r boundRepo) error {
		seen = r.q
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if tx.txs != 1 {
		t.Fatalf("tx opened %d times", tx.txs)
	}
	if _, ok := seen.(txQ); !ok {
		t.Fatalf("repo bound to %T, want the tx querier", seen)
	}
}

func TestWithTx_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	tx := &fakeTx{inner: txQ{}}
	b := BindFunc[boundRepo](func(q Queryer) boundRepo { return boundRepo{q: q} })
	if err := WithTx(context.Background(), tx, b, func(boundRepo) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
