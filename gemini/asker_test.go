package gemini_test

import (
	"context"
	"testing"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Ask_ReturnsErrorWhenNoArtifacts(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil) // nil client ok for this test

	_, err := asker.Ask(context.Background(), nil, "what is this?")

	require.Error(t, err)
	assert.Equal(t, distill.ENOTFOUND, distill.ErrorCode(err))
	assert.Contains(t, distill.ErrorMessage(err), "no articles")
}

func TestAsker_Ask_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil)
	artifacts := []*distill.Artifact{{Name: "a.md", Content: "content"}}

	_, err := asker.Ask(context.Background(), artifacts, "")

	require.Error(t, err)
	assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
	assert.Contains(t, distill.ErrorMessage(err), "question required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "helpful assistant")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsArticles(t *testing.T) {
	t.Parallel()

	artifacts := []*distill.Artifact{
		{Name: "election_results.md", Content: "The incumbent won."},
	}

	prompt := gemini.BuildUserPrompt(artifacts, "Who won?")

	assert.Contains(t, prompt, "<articles>")
	assert.Contains(t, prompt, "election_results.md")
	assert.Contains(t, prompt, "The incumbent won.")
	assert.Contains(t, prompt, "</articles>")
}

func TestBuildUserPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	artifacts := []*distill.Artifact{{Name: "a.md", Content: "content"}}

	prompt := gemini.BuildUserPrompt(artifacts, "What happened?")

	assert.Contains(t, prompt, "Question: What happened?")
}

func TestBuildUserPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	artifacts := []*distill.Artifact{{Name: "a.md", Content: "content"}}

	prompt := gemini.BuildUserPrompt(artifacts, "question")

	assert.NotContains(t, prompt, "You are a helpful assistant")
}
