package module

import dom "adscope/internal/services/intents/domain"

// Ports holds the ports exposed by the intents module
type Ports struct {
	Lookup dom.Lookup
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
