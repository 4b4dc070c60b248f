package distill

import "context"

// Artifact is a rendered output file loaded back from an output directory,
// typically for question answering over a completed run.
type Artifact struct {
	// Name is the artifact filename within the output directory.
	Name string

	// Content is the rendered Markdown or plain text.
	Content string
}

// Asker answers natural language questions about extracted artifacts.
type Asker interface {
	// Ask answers a question using only the given artifacts as context.
	Ask(ctx context.Context, artifacts []*Artifact, question string) (string, error)
}
