package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLang(t *testing.T, dir, lang, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, lang+".json"), []byte(content), 0o644))
}

func newTestBundle(t *testing.T) *Bundle {
	t.Helper()
	dir := t.TempDir()
	writeLang(t, dir, "en", `{"welcome": "Welcome!", "only_en": "English only", "token_yes": "yes", "token_no": "no"}`)
	writeLang(t, dir, "it", `{"welcome": "Benvenuto!", "token_yes": "sì", "token_no": "no"}`)

	b, err := Load(dir, "en")
	require.NoError(t, err)
	return b
}

func TestGetFallbackChain(t *testing.T) {
	b := newTestBundle(t)

	assert.Equal(t, "Benvenuto!", b.Get("it", "welcome"))
	assert.Equal(t, "English only", b.Get("it", "only_en"), "missing key falls back to default language")
	assert.Equal(t, "no_such_key", b.Get("it", "no_such_key"), "unknown key falls back to the key itself")
	assert.Equal(t, "Welcome!", b.Get("fa", "welcome"), "unknown language uses the default")
}

func TestLoadRequiresDefaultLanguage(t *testing.T) {
	dir := t.TempDir()
	writeLang(t, dir, "it", `{"welcome": "Benvenuto!"}`)

	_, err := Load(dir, "en")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeLang(t, dir, "en", `{"welcome": `)

	_, err := Load(dir, "en")
	assert.Error(t, err)
}

func TestLoadSkipsNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeLang(t, dir, "en", `{"welcome": "Welcome!"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644))

	b, err := Load(dir, "en")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en"}, b.Languages())
}

func TestHasAndLanguages(t *testing.T) {
	b := newTestBundle(t)

	assert.True(t, b.Has("en"))
	assert.True(t, b.Has("it"))
	assert.False(t, b.Has("fa"))
	assert.ElementsMatch(t, []string{"en", "it"}, b.Languages())
}

func TestYesNoTokens(t *testing.T) {
	b := newTestBundle(t)

	yes, no := b.YesNo("it")
	assert.Equal(t, "sì", yes)
	assert.Equal(t, "no", no)

	yes, no = b.YesNo("fa")
	assert.Equal(t, "yes", yes, "unknown language uses default tokens")
	assert.Equal(t, "no", no)
}
