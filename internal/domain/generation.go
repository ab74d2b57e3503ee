package domain

import "context"

// TextExtractor turns a document into plain text.
type TextExtractor interface {
	// Extract fails with an extraction error when data is not a readable
	// document or has no text layer.
	Extract(ctx context.Context, data []byte) (string, error)
}

// SourceLoader supplies the raw bytes of the grounding document.
type SourceLoader interface {
	Load(ctx context.Context) ([]byte, error)
}

// ModelInvoker sends one prompt to a generative model and returns its raw
// text. Implementations never retry.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// GenerationOutcome tags how a pipeline run ended.
type GenerationOutcome string

const (
	OutcomeOK                GenerationOutcome = "ok"
	OutcomeNoParseableOutput GenerationOutcome = "no_parseable_output"
	OutcomeNoValidCandidates GenerationOutcome = "no_valid_candidates"
	OutcomePersistFailed     GenerationOutcome = "persist_failed"
)

// GenerationResult is the typed outcome of one pipeline run. Soft failures
// (unparseable output, every candidate dropped) are reported here rather
// than as errors.
type GenerationResult struct {
	Category   string
	Requested  int
	Considered int
	Accepted   int
	Saved      int
	Failed     int
	Outcome    GenerationOutcome
	Questions  []*Question
}

// GenerationService runs the question-generation pipeline.
type GenerationService interface {
	Generate(ctx context.Context, category string, count int) (*GenerationResult, error)
}
