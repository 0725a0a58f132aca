// Package http provides http transport for transcript analysis
package http

import (
	stdhttp "net/http"

	"adscope/internal/modkit/httpkit"
	"adscope/internal/services/analysis/domain"
	svc "adscope/internal/services/analysis/service"
)

// Register mounts analysis endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/intent", h.intent)
	httpkit.PostJSON(r, "/prompt", h.prompt)
	httpkit.PostJSON(r, "/batch", h.batch)
	httpkit.Get(r, "/results/{id}", h.result)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /analysis/intent Analysis analysisIntent
// @Summary Analyze one transcript against catalog intents
// @Description Runs one model call per intent. Failed intents are reported in errors, the request itself still succeeds.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param body body domain.IntentInput true "Transcript and optional intent ids"
// @Success 200 {object} domain.AnalysisResult "ok"
// @Failure 400 {object} map[string]any "invalid input"
// @Router /analysis/intent [post]
func (h *handlers) intent(r *stdhttp.Request, in domain.IntentInput) (any, error) {
	return h.svc.AnalyzeIntents(r.Context(), in)
}

// swagger:route POST /analysis/prompt Analysis analysisPrompt
// @Summary Analyze one transcript against a free text request
// @Tags Analysis
// @Accept json
// @Produce json
// @Param body body domain.PromptInput true "Transcript and prompt"
// @Success 200 {object} domain.AnalysisResult "ok"
// @Failure 400 {object} map[string]any "invalid input"
// @Router /analysis/prompt [post]
func (h *handlers) prompt(r *stdhttp.Request, in domain.PromptInput) (any, error) {
	return h.svc.AnalyzePrompt(r.Context(), in)
}

// swagger:route POST /analysis/batch Analysis analysisBatch
// @Summary Analyze several transcripts with one mode
// @Tags Analysis
// @Accept json
// @Produce json
// @Param body body domain.BatchInput true "Videos, mode and mode arguments"
// @Success 200 {object} domain.BatchResult "ok"
// @Failure 400 {object} map[string]any "invalid input"
// @Router /analysis/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.AnalyzeBatch(r.Context(), in)
}

// swagger:route GET /analysis/results/{id} Analysis analysisResult
// @Summary Fetch a stored analysis result
// @Tags Analysis
// @Produce json
// @Param id path string true "Result id"
// @Success 200 {object} domain.AnalysisResult "ok"
// @Failure 404 {object} map[string]any "not found"
// @Router /analysis/results/{id} [get]
func (h *handlers) result(r *stdhttp.Request) (any, error) {
	return h.svc.Result(r.Context(), httpkit.Param(r, "id"))
}
