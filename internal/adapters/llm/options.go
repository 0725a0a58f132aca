package llm

import (
	"strings"
	"time"

	"adscope/internal/platform/config"
)

// Provider names a supported chat completion backend
type Provider string

const (
	// ProviderOpenAI is api.openai.com or any OpenAI compatible gateway
	ProviderOpenAI Provider = "openai"
	// ProviderOpenRouter is openrouter.ai
	ProviderOpenRouter Provider = "openrouter"
)

const (
	defaultOpenAIBaseURL     = "https://api.openai.com/v1"
	defaultOpenAIModel       = "gpt-4o-mini"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "deepseek/deepseek-chat"
	defaultTimeout           = 300 * time.Second
	defaultTemperature       = 0.1
	defaultMaxTokens         = 4096
	defaultUA                = "adscope-analyzer"
)

// ProviderConfig is the per backend connection data
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Model   string

	// Headers are added to every request (OpenRouter uses HTTP-Referer and X-Title)
	Headers map[string]string
}

// Options configures the Client
type Options struct {
	Provider  Provider
	Providers map[Provider]ProviderConfig

	Timeout     time.Duration
	Temperature float32
	MaxTokens   int

	// JSONMode asks for response_format json_object; the extractor copes when a provider ignores it
	JSONMode bool

	UserAgent string
}

// FromConfig reads LLM_* keys
func FromConfig(cfg config.Conf) Options {
	lc := cfg.Prefix("LLM_")
	oa := lc.Prefix("OPENAI_")
	or := lc.Prefix("OPENROUTER_")

	orHeaders := map[string]string{
		"HTTP-Referer": or.MayString("REFERER", "https://adscope.local"),
		"X-Title":      or.MayString("TITLE", "adscope"),
	}

	return Options{
		Provider: Provider(strings.ToLower(lc.MayEnum("PROVIDER", string(ProviderOpenAI),
			string(ProviderOpenAI), string(ProviderOpenRouter)))),
		Providers: map[Provider]ProviderConfig{
			ProviderOpenAI: {
				BaseURL: oa.MayString("BASE_URL", defaultOpenAIBaseURL),
				APIKey:  oa.MayString("API_KEY", ""),
				Model:   oa.MayString("MODEL", defaultOpenAIModel),
			},
			ProviderOpenRouter: {
				BaseURL: or.MayString("BASE_URL", defaultOpenRouterBaseURL),
				APIKey:  or.MayString("API_KEY", ""),
				Model:   or.MayString("MODEL", defaultOpenRouterModel),
				Headers: orHeaders,
			},
		},
		Timeout:     lc.MayDuration("TIMEOUT", defaultTimeout),
		Temperature: float32(lc.MayFloat64("TEMPERATURE", defaultTemperature)),
		MaxTokens:   lc.MayInt("MAX_TOKENS", defaultMaxTokens),
		JSONMode:    lc.MayBool("JSON_MODE", true),
	}
}

func (o Options) withDefaults() Options {
	if o.Provider == "" {
		o.Provider = ProviderOpenAI
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Temperature <= 0 {
		o.Temperature = defaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	return o
}

func (p ProviderConfig) withDefaults(name Provider) ProviderConfig {
	switch name {
	case ProviderOpenRouter:
		if p.BaseURL == "" {
			p.BaseURL = defaultOpenRouterBaseURL
		}
		if p.Model == "" {
			p.Model = defaultOpenRouterModel
		}
	default:
		if p.BaseURL == "" {
			p.BaseURL = defaultOpenAIBaseURL
		}
		if p.Model == "" {
			p.Model = defaultOpenAIModel
		}
	}
	p.APIKey = strings.TrimSpace(p.APIKey)
	return p
}
