package ch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

var errBoom = errors.New("boom")

type fakeConn struct {
	prepared []string
	closed   bool
	pingErr  error
}

func (f *fakeConn) PrepareBatch(_ context.Context, q string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	f.prepared = append(f.prepared, q)
	return nil, errBoom
}

func (f *fakeConn) Query(context.Context, string, ...any) (driver.Rows, error) { return nil, errBoom }
func (f *fakeConn) Ping(context.Context) error                                  { return f.pingErr }
func (f *fakeConn) Close() error                                                { f.closed = true; return nil }

type row struct {
	A string `ch:"a"`
}

func TestInsert_Validation(t *testing.T) {
	t.Parallel()

	c := &CH{conn: &fakeConn{}}
	tests := []struct {
		name  string
		table string
		rows  any
		want  string
	}{
		{name: "bad table", table: "x; drop table y", rows: []row{{A: "1"}}, want: "invalid table"},
		{name: "not a slice", table: "matches", rows: row{}, want: "wants a slice"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := c.Insert(context.Background(), tc.table, tc.rows)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	f := &fakeConn{}
	c := &CH{conn: f}
	if err := c.Insert(context.Background(), "adscope.matches", []row{}); err != nil {
		t.Fatalf("Insert empty: %v", err)
	}
	if len(f.prepared) != 0 {
		t.Fatalf("batch prepared for empty insert")
	}
}

func TestInsert_PrepareErrorSurfaces(t *testing.T) {
	t.Parallel()

	f := &fakeConn{}
	c := &CH{conn: f}
	err := c.Insert(context.Background(), "matches", []row{{A: "x"}})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if len(f.prepared) != 1 || f.prepared[0] != "INSERT INTO matches" {
		t.Fatalf("prepared = %v", f.prepared)
	}
}

func TestDisconnected(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("nil Ping should fail")
	}
	if _, err := (&CH{}).Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("Query without conn should fail")
	}
	if err := (&CH{}).Insert(context.Background(), "t", []row{{}}); err == nil {
		t.Fatalf("Insert without conn should fail")
	}
}

func TestQueryPingClose_Delegate(t *testing.T) {
	t.Parallel()

	f := &fakeConn{pingErr: errBoom}
	c := &CH{conn: f}
	if _, err := c.Query(context.Background(), "SELECT ?", 1); !errors.Is(err, errBoom) {
		t.Fatalf("Query err = %v", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("Ping err = %v", err)
	}
	if err := c.Close(); err != nil || !f.closed {
		t.Fatalf("Close err=%v closed=%v", err, f.closed)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://nope"}); err == nil {
		t.Fatalf("Open with bad dsn should fail")
	}
}

func TestClientInfo(t *testing.T) {
	t.Parallel()

	ci := ClientInfo("api", " ")
	if len(ci.Products) == 0 || ci.Products[0].Name != "adscope" || ci.Products[0].Version != "unknown" {
		t.Fatalf("products = %+v", ci.Products)
	}
	if ci.Products[1].Version != "api" {
		t.Fatalf("role = %+v", ci.Products[1])
	}
	if ci.Products[2].Name != "build" || !strings.HasPrefix(ci.Products[2].Version, "dev+") {
		t.Fatalf("build = %+v", ci.Products[2])
	}
}
