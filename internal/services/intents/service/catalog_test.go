package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	perr "adscope/internal/platform/errors"
	"adscope/internal/services/intents/domain"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		body     string
		wantLen  int
		wantCode perr.ErrorCode
		wantErr  bool
	}{
		{
			name:    "json",
			file:    "intents.json",
			body:    `{"intents":[{"id":"pain","name":"Pain point","description":"d","keywords":["tired of"]},{"id":"promo","name":"Promotion"}]}`,
			wantLen: 2,
		},
		{
			name:    "yaml",
			file:    "intents.yaml",
			body:    "intents:\n  - id: pain\n    name: Pain point\n    keywords: [tired of, struggle]\n",
			wantLen: 1,
		},
		{
			name:    "empty list",
			file:    "intents.json",
			body:    `{"intents":[]}`,
			wantLen: 0,
		},
		{
			name:     "malformed json",
			file:     "intents.json",
			body:     `{"intents":[`,
			wantErr:  true,
			wantCode: perr.ErrorCodeJSON,
		},
		{
			name:     "duplicate ids",
			file:     "intents.json",
			body:     `{"intents":[{"id":"a"},{"id":"a"}]}`,
			wantErr:  true,
			wantCode: perr.ErrorCodeConflict,
		},
		{
			name:     "missing id",
			file:     "intents.yml",
			body:     "intents:\n  - name: nameless\n",
			wantErr:  true,
			wantCode: perr.ErrorCodeValidation,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := LoadFile(writeFile(t, tc.file, tc.body))
			if tc.wantErr {
				if !perr.IsCode(err, tc.wantCode) {
					t.Fatalf("err = %v, want code %s", err, tc.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if c.Len() != tc.wantLen {
				t.Fatalf("Len = %d, want %d", c.Len(), tc.wantLen)
			}
		})
	}
}

func TestLoadFile_MissingIsEmpty(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Len() != 0 || len(c.All()) != 0 {
		t.Fatalf("want empty catalog, got %d", c.Len())
	}
}

func TestCatalog_LookupAndResolve(t *testing.T) {
	c, err := NewCatalog([]domain.Intent{
		{ID: "a", Name: "A", Keywords: []string{"x"}},
		{ID: "b"},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if it, ok := c.Lookup("b"); !ok || it.Name != "b" {
		t.Fatalf("Lookup(b) = %+v %v, want name defaulted to id", it, ok)
	}
	if _, ok := c.Lookup("zzz"); ok {
		t.Fatalf("Lookup(zzz) found something")
	}

	all, err := c.Resolve(nil)
	if err != nil || len(all) != 2 || all[0].ID != "a" {
		t.Fatalf("Resolve(nil) = %+v, %v", all, err)
	}
	got, err := c.Resolve([]string{"b", "a", "b"})
	if err != nil || len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("Resolve(b,a,b) = %+v, %v", got, err)
	}
	if _, err := c.Resolve([]string{"a", "ghost"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("Resolve unknown err = %v", err)
	}

	all[0].Keywords[0] = "mutated"
	if it, _ := c.Lookup("a"); it.Keywords[0] != "x" {
		t.Fatalf("catalog mutated through All(): %v", it.Keywords)
	}
}

func TestSvc_Get(t *testing.T) {
	c, _ := NewCatalog([]domain.Intent{{ID: "a", Name: "A"}})
	s := New(c)

	if l := s.List(context.Background()); l.Count != 1 || l.Intents[0].ID != "a" {
		t.Fatalf("List = %+v", l)
	}
	if _, err := s.Get(context.Background(), "missing"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Get(missing) err = %v", err)
	}
	if _, err := s.Get(context.Background(), ""); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("Get(empty) err = %v", err)
	}
}
