// Package llm sends analysis prompts to an OpenAI compatible chat completion API
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
)

// Client performs single turn completions against the configured provider
type Client struct {
	api      *openai.Client
	provider Provider
	conf     ProviderConfig
	opts     Options
	log      logger.Logger
	now      func() time.Time
}

// New builds a Client for opts.Provider. A missing API key is not an error here;
// Complete reports it per call so a batch can still settle every unit.
func New(o Options) (*Client, error) {
	o = o.withDefaults()
	switch o.Provider {
	case ProviderOpenAI, ProviderOpenRouter:
	default:
		return nil, perr.InvalidArgf("unknown llm provider %q", o.Provider)
	}
	pc := o.Providers[o.Provider].withDefaults(o.Provider)

	headers := map[string]string{"User-Agent": o.UserAgent}
	for k, v := range pc.Headers {
		headers[k] = v
	}

	cfg := openai.DefaultConfig(pc.APIKey)
	cfg.BaseURL = strings.TrimRight(pc.BaseURL, "/")
	cfg.HTTPClient = &http.Client{
		Timeout:   o.Timeout,
		Transport: headerTransport{base: http.DefaultTransport, headers: headers},
	}

	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		provider: o.Provider,
		conf:     pc,
		opts:     o,
		log:      *logger.Named("llm"),
		now:      time.Now,
	}, nil
}

// Provider reports the active backend
func (c *Client) Provider() Provider { return c.provider }

// ProviderName is Provider as a plain string
func (c *Client) ProviderName() string { return string(c.provider) }

// Model reports the model requested on every call
func (c *Client) Model() string { return c.conf.Model }

// Complete sends prompt as a single user message and returns the first choice content
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.conf.APIKey == "" {
		return "", perr.Newf(perr.ErrorCodeMissingCredential, "no api key configured for provider %s", c.provider)
	}

	req := openai.ChatCompletionRequest{
		Model: c.conf.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	}
	if c.opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	log := logger.C(ctx)
	log.Debug().Str("provider", string(c.provider)).Str("model", c.conf.Model).Int("prompt_len", len(prompt)).Msg("llm request")

	start := c.now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	elapsed := c.now().Sub(start)
	if err != nil {
		err = classify(err)
		log.Warn().Err(err).Dur("elapsed", elapsed).Str("provider", string(c.provider)).Msg("llm call failed")
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", perr.New(perr.ErrorCodeProtocol, "completion has no choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", perr.New(perr.ErrorCodeProtocol, "completion content is empty")
	}

	log.Debug().
		Dur("elapsed", elapsed).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Str("content", content).
		Msg("llm response")
	return content, nil
}

// classify maps client errors onto the llm error codes
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return perr.Wrapf(err, perr.ErrorCodeUpstreamHTTP, "status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return perr.Wrapf(err, perr.ErrorCodeUpstreamHTTP, "status %d: %s", reqErr.HTTPStatusCode, msg)
	}

	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return perr.Wrap(err, perr.ErrorCodeTransport, "llm request failed")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return perr.Wrap(err, perr.ErrorCodeTransport, "llm request aborted")
	}

	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syn) || errors.As(err, &typ) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return perr.Wrap(err, perr.ErrorCodeProtocol, "malformed completion response")
	}
	return perr.Wrap(err, perr.ErrorCodeTransport, "llm request failed")
}
