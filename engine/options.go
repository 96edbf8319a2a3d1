package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spektr-org/claimlens/translator"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for BuildChart / BuildTable / Execute
// ============================================================================
// Layout precedence, lowest first:
//   1. Theme defaults (WithTheme, else DefaultTheme)
//   2. Chart-kind settings (hovermode for line, barmode for stacked, ...)
//   3. Caller override (WithLayoutOverride)
// Options are applied per call; nothing is kept between calls.
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Translator translator.Translator
	Theme      Theme
	Override   *LayoutOverride
	PageSize   int
	Container  string // element id suffix; empty → random
	Logger     zerolog.Logger
}

// Theme holds the layout and render defaults shared by every chart kind.
type Theme struct {
	PrimaryColor  string   `koanf:"primary_color"`
	Template      string   `koanf:"template"`
	Background    string   `koanf:"background"`
	FontFamily    string   `koanf:"font_family"`
	Margin        Margin   `koanf:"margin"`
	ModeBarRemove []string `koanf:"modebar_remove"`
	HideModeBar   bool     `koanf:"hide_modebar"`
}

// DefaultPageSize is the table page length when none is configured.
const DefaultPageSize = 25

// DefaultTheme returns the dashboard look: white template, transparent
// background, system font stack.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:  "#1a73e8",
		Template:      "plotly_white",
		Background:    "rgba(0,0,0,0)",
		FontFamily:    `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`,
		Margin:        Margin{T: 50, R: 20, B: 50, L: 60},
		ModeBarRemove: []string{"lasso2d", "select2d"},
	}
}

// LayoutOverride replaces individual layout fields after the chart kind has
// applied its own settings. Nil fields leave the layout untouched.
type LayoutOverride struct {
	Title      *string `json:"title,omitempty"`
	Template   *string `json:"template,omitempty"`
	Margin     *Margin `json:"margin,omitempty"`
	Height     *int    `json:"height,omitempty"`
	HoverMode  *string `json:"hovermode,omitempty"`
	BarMode    *string `json:"barmode,omitempty"`
	ShowLegend *bool   `json:"showlegend,omitempty"`
}

func (o *LayoutOverride) apply(l *Layout) {
	if o == nil || l == nil {
		return
	}
	if o.Title != nil {
		l.Title = *o.Title
	}
	if o.Template != nil {
		l.Template = *o.Template
	}
	if o.Margin != nil {
		m := *o.Margin
		l.Margin = &m
	}
	if o.Height != nil {
		l.Height = *o.Height
	}
	if o.HoverMode != nil {
		l.HoverMode = *o.HoverMode
	}
	if o.BarMode != nil {
		l.BarMode = *o.BarMode
	}
	if o.ShowLegend != nil {
		v := *o.ShowLegend
		l.ShowLegend = &v
	}
}

// WithTranslator sets the label lookup. Defaults to the embedded Italian catalog.
func WithTranslator(t translator.Translator) Option {
	return func(c *config) {
		if t != nil {
			c.Translator = t
		}
	}
}

// WithTheme replaces the layout defaults. Empty fields fall back to DefaultTheme.
func WithTheme(t Theme) Option {
	return func(c *config) {
		c.Theme = mergeTheme(DefaultTheme(), t)
	}
}

// WithLayoutOverride sets caller overrides applied last.
func WithLayoutOverride(o LayoutOverride) Option {
	return func(c *config) {
		c.Override = &o
	}
}

// WithPageSize sets the table page length. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.PageSize = n
		}
	}
}

// WithContainer names the target element. Charts take it as their id,
// tables become "dt-<container>".
func WithContainer(id string) Option {
	return func(c *config) {
		c.Container = id
	}
}

// WithLogger routes engine debug logs.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Theme:    DefaultTheme(),
		PageSize: DefaultPageSize,
		Logger:   log.With().Str("component", "engine").Logger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Translator == nil {
		cfg.Translator = translator.Default()
	}
	return cfg
}

// t resolves a text key through the configured translator.
func (c *config) t(key string) string {
	return c.Translator.T(key)
}

// containerID returns the configured container, or a random uuid.
func (c *config) containerID() string {
	if c.Container != "" {
		return c.Container
	}
	return uuid.NewString()
}

func mergeTheme(base, over Theme) Theme {
	if over.PrimaryColor != "" {
		base.PrimaryColor = over.PrimaryColor
	}
	if over.Template != "" {
		base.Template = over.Template
	}
	if over.Background != "" {
		base.Background = over.Background
	}
	if over.FontFamily != "" {
		base.FontFamily = over.FontFamily
	}
	if over.Margin != (Margin{}) {
		base.Margin = over.Margin
	}
	if over.ModeBarRemove != nil {
		base.ModeBarRemove = append([]string(nil), over.ModeBarRemove...)
	}
	if over.HideModeBar {
		base.HideModeBar = true
	}
	return base
}
