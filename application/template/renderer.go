// Package template renders permission request documents written as Go templates.
package template

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

// templateConfig holds configuration for the GoTemplateEngine.
type templateConfig struct {
	now    func() time.Time
	strict bool // Fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		now:    time.Now,
		strict: true,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables/disables strict mode for missing keys.
// When enabled (default), rendering fails if a referenced variable is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// WithClock sets the clock used by the expiresIn function.
func WithClock(now func() time.Time) TemplateOption {
	return func(c *templateConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// GoTemplateEngine implements ports.TemplateEngine using text/template.
//
// Variables are available under .vars, and expiresIn turns a duration into a
// millisecond expiry timestamp:
//
//	expiry: {{ expiresIn "24h" }}
//	permissions:
//	  - type: native-token-limit
//	    data:
//	      amount: {{ .vars.amount }}
type GoTemplateEngine struct {
	config templateConfig
}

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) ports.TemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// Render processes raw with the provided variables.
func (e *GoTemplateEngine) Render(raw []byte, vars map[string]string) ([]byte, error) {
	tmpl := template.New("params").Funcs(template.FuncMap{
		"expiresIn": e.expiresIn,
	})
	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameters template: %w", err)
	}

	if vars == nil {
		vars = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{"vars": vars}); err != nil {
		return nil, fmt.Errorf("failed to execute parameters template: %w", err)
	}

	return buf.Bytes(), nil
}

func (e *GoTemplateEngine) expiresIn(d string) (int64, error) {
	dur, err := time.ParseDuration(d)
	if err != nil {
		return 0, err
	}
	if dur <= 0 {
		return 0, fmt.Errorf("expiresIn: duration must be positive, got %s", d)
	}
	return e.config.now().Add(dur).UnixMilli(), nil
}
