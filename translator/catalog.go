package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// CATALOG — go-i18n backed Translator
// ============================================================================
// Message files use flat dotted keys ("col.total_paid", "chart.observed").
// English is the bundle's default language: a key missing from the active
// locale falls back to English, and a key missing from both comes back as
// the key itself.
// ============================================================================

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog is a Translator over a go-i18n bundle. Safe for concurrent use.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
}

// New builds a catalog from the embedded message files plus, when set,
// every message file in cfg.Dir. Files in cfg.Dir override embedded
// messages with the same key.
func New(cfg Config) (*Catalog, error) {
	lang := cfg.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	files, err := fs.Glob(embedded, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list embedded locales: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(embedded, f); err != nil {
			return nil, fmt.Errorf("load embedded %s: %w", path.Base(f), err)
		}
	}

	if cfg.Dir != "" {
		if err := loadDir(bundle, cfg.Dir); err != nil {
			return nil, err
		}
	}

	return &Catalog{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang),
		lang:      lang,
	}, nil
}

func loadDir(bundle *i18n.Bundle, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		if _, err := bundle.LoadMessageFile(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("load %s: %w", e.Name(), err)
		}
	}
	return nil
}

// T resolves key in the catalog's language.
func (c *Catalog) T(key string) string {
	return localize(c.localizer, key)
}

// Language returns the active language tag.
func (c *Catalog) Language() string { return c.lang }

// Languages lists every language the bundle has messages for.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// For returns a Translator over the same messages in another language.
// An empty or unparseable tag returns the catalog itself.
func (c *Catalog) For(lang string) Translator {
	if lang == "" || lang == c.lang {
		return c
	}
	if _, err := language.Parse(lang); err != nil {
		return c
	}
	return &Catalog{bundle: c.bundle, localizer: i18n.NewLocalizer(c.bundle, lang), lang: lang}
}

func localize(l *i18n.Localizer, key string) string {
	// A fallback-language hit comes back with both a message and a
	// MessageNotFoundErr; the message wins.
	s, _ := l.Localize(&i18n.LocalizeConfig{MessageID: key})
	if s == "" {
		return key
	}
	return s
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared catalog built from DefaultConfig. The embedded
// files are part of the binary, so failing to load them is a build defect
// and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(DefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("translator: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
