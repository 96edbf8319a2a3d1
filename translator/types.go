package translator

// ============================================================================
// TRANSLATOR — Localization boundary
// ============================================================================
// The engine never embeds display text for anything governed by a label
// reference. It hands keys to a Translator and uses whatever comes back.
//
// Implementations:
//   Catalog  — go-i18n bundle with embedded it/en message files (catalog.go)
//   Func     — adapter for plain functions (tests, callers with their own store)
//   Identity — returns the key itself
// ============================================================================

// Translator resolves a text key into the active-locale string. Unknown keys
// come back unchanged.
type Translator interface {
	T(key string) string
}

// Func adapts a plain function to Translator.
type Func func(key string) string

func (f Func) T(key string) string { return f(key) }

// Identity returns every key as-is.
var Identity Translator = Func(func(key string) string { return key })

// Config holds catalog configuration.
type Config struct {
	Language string // BCP 47 tag of the active locale (e.g., "it")
	Dir      string // optional directory of extra <lang>.yaml|.yml|.json message files
}

// DefaultLanguage is the locale of the dashboard the catalog was written for.
const DefaultLanguage = "it"

// DefaultConfig returns the Italian catalog with no extra files.
func DefaultConfig() Config {
	return Config{Language: DefaultLanguage}
}
