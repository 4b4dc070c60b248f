// Package gemini answers questions about extracted articles using Google
// Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/jswierad/distill"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Asker implements distill.Asker at compile time.
var _ distill.Asker = (*Asker)(nil)

// Asker implements distill.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client) *Asker {
	return &Asker{client: client}
}

// Ask answers a natural language question about the given article
// artifacts.
func (a *Asker) Ask(ctx context.Context, artifacts []*distill.Artifact, question string) (string, error) {
	if question == "" {
		return "", distill.Errorf(distill.EINVALID, "question required")
	}
	if len(artifacts) == 0 {
		return "", distill.Errorf(distill.ENOTFOUND, "no articles to ask about")
	}

	prompt := BuildUserPrompt(artifacts, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", distill.Errorf(distill.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a collection of news articles. Answer based only on the articles provided. If the answer is not in the articles, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing articles and question.
func BuildUserPrompt(artifacts []*distill.Artifact, question string) string {
	var sb strings.Builder
	sb.WriteString("<articles>\n")
	for i, artifact := range artifacts {
		sb.WriteString("<article>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<name>%s</name>\n", artifact.Name)
		fmt.Fprintf(&sb, "<content>%s</content>\n", artifact.Content)
		sb.WriteString("</article>\n")
	}
	sb.WriteString("</articles>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
