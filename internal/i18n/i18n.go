// Package i18n holds the user-facing messages of the report. Russian is the
// default; English is available via --lang en.
package i18n

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"vizhener/internal/logging"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

// Init loads the embedded catalogues and selects lang.
func Init(lang string) {
	b := newBundle(localeFS)

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, lang)
	current = lang
}

// newBundle parses every catalogue under locales/ in fsys. A broken
// catalogue is logged and skipped; its messages fall back to Russian.
func newBundle(fsys fs.FS) *i18n.Bundle {
	b := i18n.NewBundle(language.Russian)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		logging.Warnf("read locales: %v", err)
		return b
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, "locales/"+f.Name())
		if err != nil {
			logging.Warnf("locale %s: %v", f.Name(), err)
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			logging.Warnf("locale %s: %v", f.Name(), err)
		}
	}
	return b
}

func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Languages lists the tags that have a catalogue.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()
	if bundle == nil {
		return nil
	}
	var out []string
	for _, tag := range bundle.LanguageTags() {
		out = append(out, tag.String())
	}
	return out
}

// T translates messageID, filling the template with data. Unknown IDs come
// back unchanged.
func T(messageID string, data map[string]any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("ru")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}
