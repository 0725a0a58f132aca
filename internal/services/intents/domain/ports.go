package domain

import "context"

// ServicePort defines the read-only catalog contract
type ServicePort interface {
	List(ctx context.Context) IntentList
	Get(ctx context.Context, id string) (Intent, error)
}

// Lookup is what other modules depend on to resolve intents by id
type Lookup interface {
	All() []Intent
	Resolve(ids []string) ([]Intent, error)
}
