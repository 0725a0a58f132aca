package module

import (
	"adscope/internal/core/gate"
	dom "adscope/internal/services/analysis/domain"
	intentsdom "adscope/internal/services/intents/domain"
)

// Inputs are the ports the analysis module consumes
type Inputs struct {
	LLM     dom.Completer
	Intents intentsdom.Lookup
}

// Ports holds the ports exposed by the analysis module
type Ports struct {
	Analysis dom.ServicePort
	Gate     *gate.Gate
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
