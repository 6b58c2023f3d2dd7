package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentbot/i18n"
)

func newGuideHandlers(t *testing.T) *Handlers {
	t.Helper()
	dir := t.TempDir()
	content := `{
		"guide_menu_title": "Pick a topic:",
		"guide_button_housing": "Housing",
		"guide_button_transport": "Transport",
		"guide_button_university": "University",
		"back_button": "Back"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(content), 0o644))
	bundle, err := i18n.Load(dir, "en")
	require.NoError(t, err)
	return New(Deps{Bundle: bundle})
}

func TestGuideTopics(t *testing.T) {
	for _, topic := range guideTopics {
		assert.True(t, isGuideTopic(topic))
	}
	assert.False(t, isGuideTopic("visa"))
	assert.False(t, isGuideTopic(""))
}

func TestGuideMenuMarkup(t *testing.T) {
	h := newGuideHandlers(t)

	markup := h.guideMenuMarkup("en")
	require.Len(t, markup.InlineKeyboard, 2, "three topics split two per row")
	require.Len(t, markup.InlineKeyboard[0], 2)
	require.Len(t, markup.InlineKeyboard[1], 1)

	first := markup.InlineKeyboard[0][0]
	assert.Equal(t, "Housing", first.Text)
	assert.Equal(t, cbGuideTopic, first.Unique)
	assert.Equal(t, "housing", first.Data)
}
