// Package i18n loads localized prompt strings from per-language JSON files.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Bundle holds all translations, loaded once at startup. Read-only afterwards.
type Bundle struct {
	defaultLang  string
	translations map[string]map[string]string
}

// Load reads every *.json file in dir; the file stem is the language code.
func Load(dir, defaultLang string) (*Bundle, error) {
	if defaultLang == "" {
		defaultLang = "en"
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read dir %s: %w", dir, err)
	}

	b := &Bundle{
		defaultLang:  defaultLang,
		translations: make(map[string]map[string]string),
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		b.translations[strings.TrimSuffix(name, ".json")] = table
	}

	if _, ok := b.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("i18n: default language %q has no translation file", defaultLang)
	}
	return b, nil
}

// Languages lists the loaded language codes.
func (b *Bundle) Languages() []string {
	langs := make([]string, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	return langs
}

// Has reports whether the language was loaded.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.translations[lang]
	return ok
}

// Get returns the string for (lang, key), falling back to the default
// language and finally to the key itself.
func (b *Bundle) Get(lang, key string) string {
	if table, ok := b.translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if table, ok := b.translations[b.defaultLang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	return key
}

// YesNo returns the locale's yes/no literal token pair used by binary form
// answers.
func (b *Bundle) YesNo(lang string) (string, string) {
	return b.Get(lang, "token_yes"), b.Get(lang, "token_no")
}
