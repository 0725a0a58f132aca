package service

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
	"adscope/internal/services/intents/domain"
)

// Catalog is an immutable set of intents keyed by id
type Catalog struct {
	order []domain.Intent
	byID  map[string]domain.Intent
}

// NewCatalog validates and indexes intents; ids must be unique and non empty
func NewCatalog(intents []domain.Intent) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]domain.Intent, len(intents))}
	for i, it := range intents {
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "intent %d has no id", i), "id")
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, perr.Newf(perr.ErrorCodeConflict, "duplicate intent id %q", it.ID)
		}
		if it.Name == "" {
			it.Name = it.ID
		}
		it.Keywords = append([]string(nil), it.Keywords...)
		c.byID[it.ID] = it
		c.order = append(c.order, it)
	}
	return c, nil
}

// LoadFile reads a catalog from a .json, .yaml or .yml file.
// A missing file yields an empty catalog and a warning.
func LoadFile(path string) (*Catalog, error) {
	log := logger.Named("intents")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", path).Msg("intent catalog not found, starting empty")
			return NewCatalog(nil)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "read intent catalog %s", path)
	}

	var f domain.File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "parse intent catalog %s", path)
		}
	default:
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "parse intent catalog %s", path)
		}
	}

	c, err := NewCatalog(f.Intents)
	if err != nil {
		return nil, perr.WithOp(err, "intents.LoadFile")
	}
	log.Info().Str("path", path).Int("intents", c.Len()).Msg("intent catalog loaded")
	return c, nil
}

// Len is the number of intents
func (c *Catalog) Len() int { return len(c.order) }

// Lookup returns the intent with id
func (c *Catalog) Lookup(id string) (domain.Intent, bool) {
	it, ok := c.byID[strings.TrimSpace(id)]
	if ok {
		it.Keywords = append([]string(nil), it.Keywords...)
	}
	return it, ok
}

// All returns every intent in file order
func (c *Catalog) All() []domain.Intent {
	out := make([]domain.Intent, len(c.order))
	for i, it := range c.order {
		it.Keywords = append([]string(nil), it.Keywords...)
		out[i] = it
	}
	return out
}

// Resolve maps ids to intents in the requested order, empty ids means all.
// Any unknown id fails the whole call.
func (c *Catalog) Resolve(ids []string) ([]domain.Intent, error) {
	if len(ids) == 0 {
		return c.All(), nil
	}
	out := make([]domain.Intent, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		it, ok := c.Lookup(id)
		if !ok {
			return nil, perr.WithField(perr.InvalidArgf("unknown intent id %q", id), "intent_ids")
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}
