package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExtractionPrompt(t *testing.T) {
	prompt, err := Get("extraction.json", "extract-candidates")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Columns}}")
	assert.Contains(t, prompt, "wrap it in a list")
	assert.Contains(t, prompt, "Translate")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("extraction.json", "nonexistent-key")
	assert.ErrorContains(t, err, "not found")
}

func TestMustGet(t *testing.T) {
	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { MustGet("extraction.json", "extract-candidates") })
}

func TestFormat(t *testing.T) {
	result := Format("Keys: {{.Columns}}. Again: {{.Columns}}. Missing: {{.Other}}", map[string]string{
		"Columns": "First Name, Email",
	})
	assert.Equal(t, "Keys: First Name, Email. Again: First Name, Email. Missing: {{.Other}}", result)
}
