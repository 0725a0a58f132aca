package module

import (
	"adscope/internal/platform/config"
	"adscope/internal/services/analysis/service"
)

// Options controls orchestration limits and persistence
type Options struct {
	Service service.Config

	// Persist stores results in postgres when a pool is available
	Persist bool

	// CHTable receives flattened matches when clickhouse is enabled
	CHTable string
}

// FromConfig reads CORE_ANALYSIS_*, LLM_JSON_MODE and SERVICE_CLICKHOUSE_TABLE
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ANALYSIS_")
	return Options{
		Service: service.Config{
			MaxConcurrency:   c.MayInt("MAX_CONCURRENCY", 3),
			MaxVideos:        c.MayInt("MAX_VIDEOS", 3),
			ScoreFloor:       c.MayInt("SCORE_FLOOR", 60),
			KeywordPrefilter: c.MayBool("KEYWORD_PREFILTER", false),
			AdPhase:          c.MayBool("AD_PHASE", true),
			ArtifactDir:      c.MayString("ARTIFACT_DIR", ""),
			WrappedOutput:    cfg.Prefix("LLM_").MayBool("JSON_MODE", true),
		},
		Persist: c.MayBool("PERSIST", true),
		CHTable: cfg.Prefix("SERVICE_CLICKHOUSE_").MayString("TABLE", "analysis_matches"),
	}
}

// merge lays non zero override fields over o
func (o Options) merge(ov Options) Options {
	s, ovs := &o.Service, ov.Service
	if ovs.MaxConcurrency > 0 {
		s.MaxConcurrency = ovs.MaxConcurrency
	}
	if ovs.MaxVideos > 0 {
		s.MaxVideos = ovs.MaxVideos
	}
	if ovs.ScoreFloor > 0 {
		s.ScoreFloor = ovs.ScoreFloor
	}
	if ovs.KeywordPrefilter {
		s.KeywordPrefilter = true
	}
	if ovs.AdPhase {
		s.AdPhase = true
	}
	if ovs.WrappedOutput {
		s.WrappedOutput = true
	}
	if ovs.ArtifactDir != "" {
		s.ArtifactDir = ovs.ArtifactDir
	}
	if ov.CHTable != "" {
		o.CHTable = ov.CHTable
	}
	return o
}
