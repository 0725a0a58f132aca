// Package service runs transcript analysis against a language model
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"adscope/internal/core/adphase"
	"adscope/internal/core/gate"
	"adscope/internal/core/normalize"
	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
	"adscope/internal/services/analysis/domain"
	intentsdom "adscope/internal/services/intents/domain"
)

// Service defines the service contract for analysis
type Service interface{ domain.ServicePort }

// Config tunes the orchestrator
type Config struct {
	// MaxConcurrency bounds in flight model calls across every request and batch
	MaxConcurrency int
	// MaxVideos bounds videos orchestrated at once inside one batch
	MaxVideos int
	// ScoreFloor drops intent matches scoring below it
	ScoreFloor int

	KeywordPrefilter bool
	AdPhase          bool

	// WrappedOutput tells the model to answer {"matches": [...]}; set when the client runs in json_object mode
	WrappedOutput bool

	// ArtifactDir receives batch_<unix>.json files when set
	ArtifactDir string
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 3
	}
	if c.MaxVideos <= 0 {
		c.MaxVideos = 3
	}
	if c.ScoreFloor < 0 {
		c.ScoreFloor = 0
	}
	if c.ScoreFloor > 100 {
		c.ScoreFloor = 100
	}
	return c
}

// Svc implements the Service interface
type Svc struct {
	cfg     Config
	llm     domain.Completer
	intents intentsdom.Lookup
	store   domain.ResultStore
	sink    domain.MatchSink

	calls   *gate.Gate
	norm    *normalize.Normalizer
	labeler *adphase.Labeler

	now   func() time.Time
	newID func() string
	log   logger.Logger
}

// Option customizes a Svc
type Option func(*Svc)

// WithStore persists every result
func WithStore(s domain.ResultStore) Option { return func(v *Svc) { v.store = s } }

// WithSink appends matches to an analytics sink
func WithSink(s domain.MatchSink) Option { return func(v *Svc) { v.sink = s } }

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option { return func(v *Svc) { v.now = now } }

// WithIDs overrides id generation
func WithIDs(fn func() string) Option { return func(v *Svc) { v.newID = fn } }

// WithPhaseTable replaces the default ad phase keyword table
func WithPhaseTable(t adphase.Table) Option { return func(v *Svc) { v.labeler = adphase.New(t) } }

// New creates a new analysis service
func New(cfg Config, llm domain.Completer, intents intentsdom.Lookup, opts ...Option) *Svc {
	if llm == nil {
		panic("analysis.Service requires a non nil Completer")
	}
	if intents == nil {
		panic("analysis.Service requires a non nil intent Lookup")
	}
	cfg = cfg.withDefaults()
	s := &Svc{
		cfg:     cfg,
		llm:     llm,
		intents: intents,
		calls:   gate.New(cfg.MaxConcurrency),
		norm:    normalize.New(),
		labeler: adphase.New(nil),
		now:     time.Now,
		newID:   uuid.NewString,
		log:     *logger.Named("analysis"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Gate exposes the shared call gate
func (s *Svc) Gate() *gate.Gate { return s.calls }

// AnalyzeIntents matches one transcript against catalog intents
func (s *Svc) AnalyzeIntents(ctx context.Context, in domain.IntentInput) (domain.AnalysisResult, error) {
	if strings.TrimSpace(in.VideoID) == "" {
		return domain.AnalysisResult{}, perr.WithField(perr.InvalidArgf("video_id is required"), "video_id")
	}
	intents, err := s.intents.Resolve(in.IntentIDs)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	res := s.analyzeVideo(ctx, job{mode: domain.ModeIntent, videoID: in.VideoID, lines: in.Subtitles, intents: intents})
	s.persist(ctx, res.ID, res)
	return res, nil
}

// AnalyzePrompt matches one transcript against a free text query
func (s *Svc) AnalyzePrompt(ctx context.Context, in domain.PromptInput) (domain.AnalysisResult, error) {
	if strings.TrimSpace(in.VideoID) == "" {
		return domain.AnalysisResult{}, perr.WithField(perr.InvalidArgf("video_id is required"), "video_id")
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return domain.AnalysisResult{}, perr.WithField(perr.InvalidArgf("prompt is required in prompt mode"), "prompt")
	}
	res := s.analyzeVideo(ctx, job{mode: domain.ModePrompt, videoID: in.VideoID, lines: in.Subtitles, query: in.Prompt})
	s.persist(ctx, res.ID, res)
	return res, nil
}

// Result loads a stored result
func (s *Svc) Result(ctx context.Context, id string) (domain.AnalysisResult, error) {
	if s.store == nil {
		return domain.AnalysisResult{}, perr.NotFoundf("result %s not found: no result store configured", id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.AnalysisResult{}, perr.WithField(perr.InvalidArgf("result id %q is not a uuid", id), "id")
	}
	return s.store.Get(ctx, id)
}

// persist saves and forwards a result, failures are logged and never surface to the caller
func (s *Svc) persist(ctx context.Context, runID string, res domain.AnalysisResult) {
	log := logger.C(ctx)
	if s.store != nil {
		if err := s.store.Save(ctx, res); err != nil {
			log.Error().Err(err).Str("result_id", res.ID).Msg("save analysis result failed")
		}
	}
	if s.sink != nil {
		if err := s.sink.Append(ctx, runID, res); err != nil {
			log.Error().Err(err).Str("result_id", res.ID).Msg("append matches failed")
		}
	}
}


