// Command adscope-analyze runs a batch analysis over transcript files and writes a JSON artifact
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"adscope/internal/adapters/llm"
	"adscope/internal/core/transcript"
	"adscope/internal/modkit"
	"adscope/internal/platform/config"
	"adscope/internal/platform/logger"
	"adscope/internal/platform/store"

	"adscope/internal/services/analysis/domain"
	analysismod "adscope/internal/services/analysis/module"
	"adscope/internal/services/analysis/service"
	intentsmod "adscope/internal/services/intents/module"
)

// overrides carries flag values into CORE_ANALYSIS_* so modules read one config surface
type overrides struct {
	workers, videos, floor int
	persist, prefilter     bool
	intentsFile            string
}

// env lists the variables to set; zero values keep the environment as is
func (o overrides) env() [][2]string {
	var kv [][2]string
	if o.workers > 0 {
		kv = append(kv, [2]string{"CORE_ANALYSIS_MAX_CONCURRENCY", strconv.Itoa(o.workers)})
	}
	if o.videos > 0 {
		kv = append(kv, [2]string{"CORE_ANALYSIS_MAX_VIDEOS", strconv.Itoa(o.videos)})
	}
	if o.floor >= 0 {
		kv = append(kv, [2]string{"CORE_ANALYSIS_SCORE_FLOOR", strconv.Itoa(o.floor)})
	}
	if o.prefilter {
		kv = append(kv, [2]string{"CORE_ANALYSIS_KEYWORD_PREFILTER", "1"})
	}
	if o.intentsFile != "" {
		kv = append(kv, [2]string{"CORE_ANALYSIS_INTENTS_FILE", o.intentsFile})
	}
	persist := "0"
	if o.persist {
		persist = "1"
	}
	return append(kv, [2]string{"CORE_ANALYSIS_PERSIST", persist})
}

func (o overrides) apply() error {
	for _, kv := range o.env() {
		if err := os.Setenv(kv[0], kv[1]); err != nil {
			return fmt.Errorf("set %s: %w", kv[0], err)
		}
	}
	return nil
}

type runArgs struct {
	files   []string
	mode    string
	intents string
	prompt  string
	out     string
	persist bool
}

func main() {
	var (
		inputs   = flag.String("transcripts", "", "transcript directory, glob, or comma separated files")
		mode     = flag.String("mode", "intent", "intent or prompt")
		intents  = flag.String("intents", "", "comma separated intent ids, empty means all")
		prompt   = flag.String("prompt", "", "free text request for prompt mode")
		out      = flag.String("out", "", "artifact path, default is <artifact dir>/batch_<unix>.json")
		workers  = flag.Int("workers", 0, "max concurrent model calls (0 keeps CORE_ANALYSIS_MAX_CONCURRENCY)")
		videos   = flag.Int("videos", 0, "max videos in flight (0 keeps CORE_ANALYSIS_MAX_VIDEOS)")
		floor    = flag.Int("floor", -1, "score floor for intent matches (-1 keeps CORE_ANALYSIS_SCORE_FLOOR)")
		persist  = flag.Bool("persist", false, "store results when SERVICE_PGSQL_DBURL is set")
		prefilt  = flag.Bool("prefilter", false, "skip intents whose keywords never appear")
		intentsF = flag.String("intents-file", "", "intent catalog file (json or yaml)")
	)
	flag.Parse()

	files, err := collect(*inputs)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no transcripts found, pass -transcripts")
	}
	ov := overrides{workers: *workers, videos: *videos, floor: *floor, persist: *persist, prefilter: *prefilt, intentsFile: *intentsF}
	if err := ov.apply(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	res, err := run(ctx, runArgs{files: files, mode: *mode, intents: *intents, prompt: *prompt, out: *out, persist: *persist})
	stop()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("analysis failed")
	}
	summarize(res)
}

// run owns every opened resource, so the store is closed on all return paths
func run(ctx context.Context, a runArgs) (domain.BatchResult, error) {
	root := config.New()
	l := logger.Get()

	stCfg := store.FromConfig(root, "adscope-analyze")
	stCfg.PG.Enabled = stCfg.PG.Enabled && a.persist
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("store.Open: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	model, err := llm.New(llm.FromConfig(root))
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("llm client: %w", err)
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: *l}

	im, err := intentsmod.New(deps, intentsmod.Options{})
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("intent catalog: %w", err)
	}
	am, err := analysismod.New(ctx, deps, analysismod.Inputs{
		LLM:     model,
		Intents: modkit.MustPortsOf[intentsmod.Ports](im).Lookup,
	}, analysismod.Options{})
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("analysis module: %w", err)
	}

	in, err := batchInput(a)
	if err != nil {
		return domain.BatchResult{}, err
	}

	l.Info().Int("videos", len(in.Videos)).Str("mode", a.mode).Str("provider", model.ProviderName()).Str("model", model.Model()).Msg("analysis starting")
	res, err := modkit.MustPortsOf[analysismod.Ports](am).Analysis.AnalyzeBatch(ctx, in)
	if err != nil {
		return domain.BatchResult{}, err
	}

	if a.out != "" {
		if err := service.WriteArtifactFile(a.out, res); err != nil {
			return res, fmt.Errorf("write artifact: %w", err)
		}
		res.Artifact = a.out
	}
	return res, nil
}

func batchInput(a runArgs) (domain.BatchInput, error) {
	in := domain.BatchInput{Mode: domain.Mode(a.mode), Prompt: a.prompt, IntentIDs: splitCSV(a.intents)}
	for _, f := range a.files {
		lines, err := transcript.ReadFile(f)
		if err != nil {
			return domain.BatchInput{}, err
		}
		in.Videos = append(in.Videos, domain.VideoInput{VideoID: transcript.VideoID(f), Subtitles: lines})
	}
	return in, nil
}

// collect expands a directory, glob or comma separated list into transcript files
func collect(arg string) ([]string, error) {
	var files []string
	for _, part := range splitCSV(arg) {
		if fi, err := os.Stat(part); err == nil && fi.IsDir() {
			m, err := filepath.Glob(filepath.Join(part, "*.json"))
			if err != nil {
				return nil, err
			}
			files = append(files, m...)
			continue
		}
		m, err := filepath.Glob(part)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", part, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no transcript matches %q", part)
		}
		files = append(files, m...)
	}
	sort.Strings(files)
	return files, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func summarize(res domain.BatchResult) {
	ids := make([]string, 0, len(res.Videos))
	for id := range res.Videos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("run %s (%s) in %.1fs\n", res.RunID, res.Mode, res.DurationSeconds)
	for _, id := range ids {
		v := res.Videos[id]
		fmt.Printf("  %-32s matches=%-4d errors=%d\n", id, v.MatchCount(), len(v.Errors))
		for _, e := range v.ErrorStrings() {
			fmt.Printf("    ! %s\n", e)
		}
	}
	if res.Artifact != "" {
		fmt.Printf("artifact: %s\n", res.Artifact)
	}
}
