package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adscope/internal/core/gate"
	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
	"adscope/internal/services/analysis/domain"
	intentsdom "adscope/internal/services/intents/domain"
)

// AnalyzeBatch analyzes several videos with one mode.
// Only invalid arguments fail the call; every video gets an entry.
func (s *Svc) AnalyzeBatch(ctx context.Context, in domain.BatchInput) (domain.BatchResult, error) {
	intents, err := s.checkBatch(in)
	if err != nil {
		return domain.BatchResult{}, err
	}

	start := s.now()
	out := domain.BatchResult{
		RunID:     s.newID(),
		Mode:      in.Mode,
		Videos:    make(map[string]domain.AnalysisResult, len(in.Videos)),
		StartTime: start,
	}
	ctx = logger.WithRun(ctx, out.RunID)
	log := logger.C(ctx)
	log.Info().Int("videos", len(in.Videos)).Str("mode", string(in.Mode)).Int("intents", len(intents)).Msg("batch started")

	videos := gate.New(s.cfg.MaxVideos)
	settled := gate.Settle(ctx, in.Videos, func(ctx context.Context, v domain.VideoInput) (domain.AnalysisResult, error) {
		var res domain.AnalysisResult
		err := videos.Do(ctx, func(ctx context.Context) error {
			res = s.analyzeVideo(ctx, job{
				mode:    in.Mode,
				videoID: v.VideoID,
				lines:   v.Subtitles,
				intents: intents,
				query:   in.Prompt,
			})
			return nil
		})
		return res, err
	})

	for _, o := range settled {
		res := o.Value
		if o.Err != nil {
			res = s.failedVideo(o.Key, in.Mode, o.Err)
		}
		out.Videos[o.Key.VideoID] = res
		s.persist(ctx, out.RunID, res)
	}

	out.EndTime = s.now()
	out.DurationSeconds = elapsed(start, out.EndTime)

	if s.cfg.ArtifactDir != "" {
		path, err := WriteArtifact(s.cfg.ArtifactDir, out)
		if err != nil {
			log.Error().Err(err).Msg("write batch artifact failed")
		} else {
			out.Artifact = path
		}
	}

	log.Info().Dur("elapsed", out.EndTime.Sub(start)).Int("call_peak", s.calls.Peak()).Msg("batch finished")
	return out, nil
}

// checkBatch rejects the inputs that make a whole batch meaningless
func (s *Svc) checkBatch(in domain.BatchInput) ([]intentsdom.Intent, error) {
	if !in.Mode.Valid() {
		return nil, perr.WithField(perr.InvalidArgf("unknown mode %q", in.Mode), "mode")
	}
	if len(in.Videos) == 0 {
		return nil, perr.WithField(perr.InvalidArgf("batch has no videos"), "videos")
	}
	seen := make(map[string]struct{}, len(in.Videos))
	for _, v := range in.Videos {
		id := strings.TrimSpace(v.VideoID)
		if id == "" {
			return nil, perr.WithField(perr.InvalidArgf("every video needs a video_id"), "videos")
		}
		if _, dup := seen[id]; dup {
			return nil, perr.WithField(perr.InvalidArgf("duplicate video_id %q", id), "videos")
		}
		seen[id] = struct{}{}
	}

	switch in.Mode {
	case domain.ModePrompt:
		if strings.TrimSpace(in.Prompt) == "" {
			return nil, perr.WithField(perr.InvalidArgf("prompt is required in prompt mode"), "prompt")
		}
		return nil, nil
	default:
		return s.intents.Resolve(in.IntentIDs)
	}
}

// failedVideo is the entry for a video that never got a slot
func (s *Svc) failedVideo(v domain.VideoInput, mode domain.Mode, err error) domain.AnalysisResult {
	if _, ok := perr.As(err); !ok {
		err = perr.Wrap(err, perr.ErrorCodeTransport, "video not analyzed")
	}
	now := s.now()
	res := domain.AnalysisResult{
		ID:        s.newID(),
		VideoID:   v.VideoID,
		Mode:      mode,
		Errors:    []domain.UnitError{{UnitID: v.VideoID, Error: err.Error(), Code: perr.CodeOf(err).String()}},
		StartTime: now,
		EndTime:   now,
	}
	if mode == domain.ModeIntent {
		res.Groups = map[string]domain.IntentGroup{}
	}
	return res
}

// WriteArtifact writes b as dir/batch_<unix>.json and returns the path
func WriteArtifact(dir string, b domain.BatchResult) (string, error) {
	ts := b.EndTime
	if ts.IsZero() {
		ts = time.Now()
	}
	path := filepath.Join(dir, fmt.Sprintf("batch_%d.json", ts.Unix()))
	if err := writeJSON(path, b); err != nil {
		return "", err
	}
	return path, nil
}

// WriteArtifactFile writes b to an explicit path
func WriteArtifactFile(path string, b domain.BatchResult) error {
	return writeJSON(path, b)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "create %s", filepath.Dir(path))
	}
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode artifact")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "rename %s", tmp)
	}
	return nil
}
