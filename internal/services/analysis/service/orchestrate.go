package service

import (
	"context"
	"time"

	"adscope/internal/core/extract"
	"adscope/internal/core/gate"
	"adscope/internal/core/matches"
	"adscope/internal/core/prompt"
	"adscope/internal/core/transcript"
	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
	"adscope/internal/services/analysis/domain"
	intentsdom "adscope/internal/services/intents/domain"
)

// unitState tracks one (target x video) unit
type unitState uint8

const (
	statePending unitState = iota
	stateAdmitted
	stateInFlight
	stateCompleted
	stateFailed
)

func (s unitState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateAdmitted:
		return "admitted"
	case stateInFlight:
		return "in_flight"
	case stateCompleted:
		return "completed"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// job is the orchestration input for one video
type job struct {
	mode    domain.Mode
	videoID string
	lines   []domain.Line
	intents []intentsdom.Intent
	query   string
}

// unit is one model call plus its post processing
type unit struct {
	id     string
	intent *intentsdom.Intent
	target prompt.Target
	state  unitState
}

// unitResult is what a settled unit yields
type unitResult struct {
	matches []domain.Match
	state   unitState
}

// analyzeVideo fans out one unit per intent (or a single prompt unit),
// waits for all of them and aggregates. It never fails as a whole.
func (s *Svc) analyzeVideo(ctx context.Context, j job) domain.AnalysisResult {
	start := s.now()
	res := domain.AnalysisResult{
		ID:        s.newID(),
		VideoID:   j.videoID,
		Mode:      j.mode,
		Errors:    []domain.UnitError{},
		StartTime: start,
	}
	ctx = logger.WithRun(ctx, res.ID)
	log := logger.C(ctx).With().Str("video_id", j.videoID).Str("mode", string(j.mode)).Logger()

	switch j.mode {
	case domain.ModePrompt:
		u := &unit{id: string(domain.ModePrompt), target: prompt.QueryTarget(j.query)}
		out := gate.Settle(ctx, []*unit{u}, func(ctx context.Context, u *unit) (unitResult, error) {
			return s.runUnit(ctx, j.lines, u)
		})
		if err := out[0].Err; err != nil {
			res.Errors = append(res.Errors, unitError(u, err))
		} else {
			res.Matches = out[0].Value.matches
		}

	default:
		res.Groups = make(map[string]domain.IntentGroup, len(j.intents))
		plain := transcript.PlainText(j.lines)

		units := make([]*unit, 0, len(j.intents))
		for i := range j.intents {
			it := &j.intents[i]
			hits := s.norm.CountTerms(plain, it.Keywords)
			if s.cfg.KeywordPrefilter && len(it.Keywords) > 0 && hits == 0 {
				log.Debug().Str("intent_id", it.ID).Msg("no keyword hits, skipping model call")
				res.Groups[it.ID] = domain.IntentGroup{IntentName: it.Name, Skipped: true, Matches: []domain.Match{}}
				continue
			}
			res.Groups[it.ID] = domain.IntentGroup{IntentName: it.Name, KeywordHits: hits}
			units = append(units, &unit{
				id:     it.ID,
				intent: it,
				target: prompt.IntentTarget(it.Name, it.Description, it.Keywords),
			})
		}

		out := gate.Settle(ctx, units, func(ctx context.Context, u *unit) (unitResult, error) {
			return s.runUnit(ctx, j.lines, u)
		})
		for _, o := range out {
			u := o.Key
			if o.Err != nil {
				delete(res.Groups, u.id)
				res.Errors = append(res.Errors, unitError(u, o.Err))
				continue
			}
			kept := matches.AtLeast(o.Value.matches, s.cfg.ScoreFloor)
			matches.SortByScore(kept)
			g := res.Groups[u.id]
			g.Matches = kept
			res.Groups[u.id] = g
		}
	}

	res.EndTime = s.now()
	res.DurationSeconds = elapsed(start, res.EndTime)
	log.Info().
		Str("result_id", res.ID).
		Int("matches", res.MatchCount()).
		Int("errors", len(res.Errors)).
		Dur("elapsed", res.EndTime.Sub(start)).
		Msg("video analyzed")
	return res
}

// runUnit builds the prompt, calls the model under the shared gate, then extracts and validates.
// The permit is released before extraction.
func (s *Svc) runUnit(ctx context.Context, lines []domain.Line, u *unit) (unitResult, error) {
	log := logger.C(ctx).With().Str("unit_id", u.id).Logger()
	t := u.target
	t.Wrapped = s.cfg.WrappedOutput
	p := prompt.Build(lines, t)

	var raw string
	waitStart := s.now()
	err := s.calls.Do(ctx, func(ctx context.Context) error {
		u.state = stateAdmitted
		log.Debug().Dur("waited", s.now().Sub(waitStart)).Int("in_flight", s.calls.InFlight()).Msg("unit admitted")
		u.state = stateInFlight
		var err error
		raw, err = s.llm.Complete(ctx, p)
		return err
	})
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.Wrap(err, perr.ErrorCodeTransport, "llm call not completed")
		}
		u.state = stateFailed
		log.Warn().Err(err).Str("state", u.state.String()).Msg("unit failed")
		return unitResult{state: u.state}, err
	}

	ex := extract.Locate(raw)
	if ex.Kind != extract.Direct {
		log.Debug().Str("extraction", ex.Kind.String()).Msg("payload located")
	}
	found, err := matches.Validate(ctx, ex.Text)
	if err != nil {
		u.state = stateFailed
		log.Warn().Err(err).Str("extraction", ex.Kind.String()).Msg("unit output rejected")
		return unitResult{state: u.state}, err
	}

	for i := range found {
		if u.intent != nil {
			found[i].IntentID = u.intent.ID
			found[i].IntentName = u.intent.Name
		}
		if s.cfg.AdPhase {
			phase, _ := s.labeler.Label(found[i].CoreText, found[i].Context)
			found[i].AdPhase = string(phase)
		}
	}
	u.state = stateCompleted
	return unitResult{matches: found, state: u.state}, nil
}

func unitError(u *unit, err error) domain.UnitError {
	ue := domain.UnitError{UnitID: u.id, Error: err.Error(), Code: perr.CodeOf(err).String()}
	if u.intent != nil {
		ue.IntentID = u.intent.ID
	}
	return ue
}

func elapsed(start, end time.Time) float64 { return end.Sub(start).Seconds() }
