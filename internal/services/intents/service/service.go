// Package service exposes the intent catalog
package service

import (
	"context"

	perr "adscope/internal/platform/errors"
	"adscope/internal/services/intents/domain"
)

// Service defines the service contract for intents
type Service interface{ domain.ServicePort }

// Svc implements the Service interface over a Catalog
type Svc struct {
	cat *Catalog
}

// New creates a new intents service
func New(cat *Catalog) *Svc {
	if cat == nil {
		panic("intents.Service requires a non nil Catalog")
	}
	return &Svc{cat: cat}
}

// List returns all intents
func (s *Svc) List(_ context.Context) domain.IntentList {
	all := s.cat.All()
	return domain.IntentList{Intents: all, Count: len(all)}
}

// Get returns one intent by id
func (s *Svc) Get(_ context.Context, id string) (domain.Intent, error) {
	if id == "" {
		return domain.Intent{}, perr.WithField(perr.InvalidArgf("intent id is required"), "id")
	}
	it, ok := s.cat.Lookup(id)
	if !ok {
		return domain.Intent{}, perr.NotFoundf("intent %q not found", id)
	}
	return it, nil
}
