// Package i18n translates user-facing wizard text.
//
// Components never reach for a global: they receive a Translator through
// their configuration. Bundle is the production implementation, backed by
// go-i18n with YAML locale files embedded in the binary.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/wallet-setup/internal/logging"
)

// DefaultLanguage is used when no language is requested
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves a message key to display text
type Translator interface {
	T(key string, opts ...Option) string
}

// Option adjusts a single lookup
type Option func(*lookup)

type lookup struct {
	defaultValue string
	hasDefault   bool
	data         map[string]interface{}
}

// WithDefault returns value when key has no translation
func WithDefault(value string) Option {
	return func(l *lookup) {
		l.defaultValue = value
		l.hasDefault = true
	}
}

// WithData supplies template data for messages with {{.Field}} placeholders
func WithData(data map[string]interface{}) Option {
	return func(l *lookup) {
		l.data = data
	}
}

// Bundle is a Translator backed by go-i18n
type Bundle struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
}

// New loads the embedded locales and selects lang
func New(lang string) (*Bundle, error) {
	return NewFromFS(localeFS, "locales", lang)
}

// NewFromFS loads every *.yaml file in dir of fsys. File names select the
// language (en.yaml, de.yaml).
func NewFromFS(fsys fs.FS, dir string, lang string) (*Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name(), err)
		}
	}

	b := &Bundle{bundle: bundle}
	if err := b.SetLang(lang); err != nil {
		return nil, err
	}
	return b, nil
}

// MustNew is New for the embedded, known-good locales
func MustNew(lang string) *Bundle {
	b, err := New(lang)
	if err != nil {
		panic(err)
	}
	return b
}

// SetLang switches the active language. Unknown languages fall back to
// English at lookup time.
func (b *Bundle) SetLang(lang string) error {
	if lang == "" {
		lang = DefaultLanguage
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.localizer = i18n.NewLocalizer(b.bundle, lang)
	b.lang = lang
	return nil
}

// Lang returns the active language
func (b *Bundle) Lang() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lang
}

// Languages lists the languages with a loaded locale file
func (b *Bundle) Languages() []string {
	var langs []string
	for _, tag := range b.bundle.LanguageTags() {
		langs = append(langs, tag.String())
	}
	sort.Strings(langs)
	return langs
}

// T translates key. A missing key yields the WithDefault value when one was
// given, otherwise the key itself.
func (b *Bundle) T(key string, opts ...Option) string {
	var l lookup
	for _, opt := range opts {
		opt(&l)
	}

	b.mu.RLock()
	localizer := b.localizer
	b.mu.RUnlock()

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: l.data,
	})
	// A key missing from the active locale still yields the default
	// language message alongside a MessageNotFoundErr.
	if msg == "" {
		if err != nil {
			var notFound *i18n.MessageNotFoundErr
			if !errors.As(err, &notFound) {
				logging.Debug("Translation failed", zap.String("key", key), zap.Error(err))
			}
		}
		if l.hasDefault {
			return l.defaultValue
		}
		return key
	}
	return msg
}

// Static is a map-backed Translator for tests and fallbacks
type Static map[string]string

// T implements Translator
func (s Static) T(key string, opts ...Option) string {
	if v, ok := s[key]; ok {
		return v
	}
	var l lookup
	for _, opt := range opts {
		opt(&l)
	}
	if l.hasDefault {
		return l.defaultValue
	}
	return key
}
