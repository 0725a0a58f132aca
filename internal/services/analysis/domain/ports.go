package domain

import "context"

// ServicePort defines the analysis contract
type ServicePort interface {
	AnalyzeIntents(ctx context.Context, in IntentInput) (AnalysisResult, error)
	AnalyzePrompt(ctx context.Context, in PromptInput) (AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, in BatchInput) (BatchResult, error)
	Result(ctx context.Context, id string) (AnalysisResult, error)
}

// Completer sends one prompt to a language model and returns its raw text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ResultStore persists analysis results
type ResultStore interface {
	Save(ctx context.Context, r AnalysisResult) error
	Get(ctx context.Context, id string) (AnalysisResult, error)
}

// MatchSink receives matches for analytics
type MatchSink interface {
	Append(ctx context.Context, runID string, r AnalysisResult) error
}
