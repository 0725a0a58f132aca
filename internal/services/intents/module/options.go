package module

import (
	"adscope/internal/platform/config"
	"adscope/internal/services/intents/service"
)

// Options controls where the catalog comes from
type Options struct {
	File string

	// Catalog, when set, is used as is and File is ignored
	Catalog *service.Catalog
}

// FromConfig reads CORE_ANALYSIS_INTENTS_FILE
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ANALYSIS_")
	return Options{File: c.MayString("INTENTS_FILE", "config/intents.json")}
}
