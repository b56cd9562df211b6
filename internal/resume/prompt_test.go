package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_English(t *testing.T) {
	set, err := Segment(englishExport, LocaleEN)
	require.NoError(t, err)

	prompt, err := BuildPrompt(set, LocaleEN)
	require.NoError(t, err)

	assert.Contains(t, prompt, `"mainSkills": ["string"]`)
	assert.Contains(t, prompt, "\nSummary:\nBackend engineer with ten years of experience building APIs.\n")
	assert.Contains(t, prompt, "\nContact:\njane.doe@example.com")
	assert.Contains(t, prompt, "Return ONLY the JSON object")
	assert.Contains(t, prompt, "Present")
	assert.NotContains(t, prompt, "Translate")
}

func TestBuildPrompt_SpanishAddsTranslation(t *testing.T) {
	set, err := Segment(spanishExport, LocaleES)
	require.NoError(t, err)

	prompt, err := BuildPrompt(set, LocaleES)
	require.NoError(t, err)

	assert.Contains(t, prompt, "\nExtracto:\nIngeniero con experiencia en sistemas distribuidos.\n")
	assert.Contains(t, prompt, "\nAptitudes principales:\nGo")
	assert.Contains(t, prompt, "Translate every extracted value into English")
}

func TestBuildPrompt_Errors(t *testing.T) {
	_, err := BuildPrompt(&SectionSet{}, LocaleUndetected)
	assert.True(t, errors.Is(err, ErrUnsupportedLocale))

	_, err = BuildPrompt(nil, LocaleEN)
	assert.Error(t, err)
}
