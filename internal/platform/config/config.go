// Package config reads settings from namespaced environment variables.
// May* getters fall back to a default and warn on unparsable input; Must*
// getters panic, which is how startup reports a broken deployment
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"adscope/internal/platform/logger"
)

// Conf is a namespaced view over environment variables. Prefixes nest:
// New().Prefix("CORE_").Prefix("ANALYSIS_") reads CORE_ANALYSIS_*
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with p appended to the prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

// may parses key or returns def when it is unset or unparsable
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Err(err).Msg("invalid env value; using default")
		return def
	}
	return v
}

// must parses key and panics when it is unset or unparsable
func must[T any](c Conf, key string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Err(err).Msg("invalid env value")
	}
	return v
}

func str(s string) (string, error) { return s, nil }

func absURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err == nil && !u.IsAbs() {
		err = fmt.Errorf("%q is not absolute", s)
	}
	return u, err
}

func port(s string) (string, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return "", fmt.Errorf("port %q outside 1..65535", s)
	}
	return ":" + s, nil
}

func float(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// MustString returns the trimmed value
func (c Conf) MustString(key string) string { return must(c, key, str) }

// MustInt returns the value as an int
func (c Conf) MustInt(key string) int { return must(c, key, strconv.Atoi) }

// MustBool accepts anything strconv.ParseBool does
func (c Conf) MustBool(key string) bool { return must(c, key, strconv.ParseBool) }

// MustDuration accepts time.ParseDuration syntax (250ms, 2s, 1h)
func (c Conf) MustDuration(key string) time.Duration { return must(c, key, time.ParseDuration) }

// MustURL requires an absolute URL
func (c Conf) MustURL(key string) *url.URL { return must(c, key, absURL) }

// MustPort returns a listen addr like ":4000"
func (c Conf) MustPort(key string) string { return must(c, key, port) }

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, def, str) }

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(key string, def float64) float64 { return may(c, key, def, float) }

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks. def is returned when
// nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value (or def) lowercased and panics when it is not one
// of allowed
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := strings.ToLower(c.MayString(key, def))
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
