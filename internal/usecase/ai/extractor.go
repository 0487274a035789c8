package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	pkgai "github.com/CS222-UIUC/fa25-fa25-team027/pkg/ai"
)

// ErrExtraction means the model could not be reached or is not available.
// Unparseable output is not an ErrExtraction; it yields a fallback record.
var ErrExtraction = errors.New("summary extraction failed")

const systemPrompt = `You are an expert meeting summarizer. Your job is to analyze meeting transcripts and extract structured information.

You must return ONLY valid JSON with this exact structure (no additional text):

{
  "summary_heading": "A brief title for the meeting (max 50 characters)",
  "key_points": ["Important discussion point 1", "Important discussion point 2"],
  "action_items": [
    {"assignee": "Person's name or 'Unassigned'", "task": "Clear description of the task", "deadline": "Deadline mentioned or null"}
  ],
  "decisions": ["Key decision 1", "Key decision 2"]
}

Guidelines:
- Extract 3-7 key points that capture main discussion topics
- Identify all action items with clear owners
- Note any explicit decisions made
- If no items exist for a category, use an empty array []
- Keep descriptions concise but informative
- Return ONLY the JSON object, no markdown, no explanation`

// ExtractOptions carries optional context for the prompt.
type ExtractOptions struct {
	Title    string
	Speakers []string
}

// Extractor defines summary extraction
type Extractor interface {
	ExtractSummary(ctx context.Context, transcript string, opts ExtractOptions) (*entities.SummaryRecord, error)
}

type extractor struct {
	generator pkgai.Generator
	parser    *Parser
	logger    *zap.Logger
}

// NewExtractor constructs an Extractor around a model client
func NewExtractor(generator pkgai.Generator, logger *zap.Logger) Extractor {
	return &extractor{
		generator: generator,
		parser:    NewParser(),
		logger:    logger,
	}
}

// ExtractSummary asks the model for a summary and normalizes the answer.
// A model that cannot be reached is reported as ErrExtraction; output that
// cannot be parsed degrades to the fallback record.
func (e *extractor) ExtractSummary(ctx context.Context, transcript string, opts ExtractOptions) (*entities.SummaryRecord, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, entities.ErrEmptyTranscript
	}

	raw, err := e.generator.Generate(ctx, BuildPrompt(transcript, opts))
	if err != nil {
		if e.logger != nil {
			e.logger.Error("summary.generate_failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	rec, err := e.parser.Parse(raw)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("summary.fallback",
				zap.Error(err),
				zap.String("response_preview", excerpt(raw, excerptRunes)))
		}
		return e.parser.Fallback(transcript), nil
	}

	if e.logger != nil {
		e.logger.Info("summary.extracted",
			zap.String("summary_heading", rec.SummaryHeading),
			zap.Int("key_points", len(rec.KeyPoints)),
			zap.Int("decisions", len(rec.Decisions)),
			zap.Int("action_items", len(rec.ActionItems)))
	}
	return rec, nil
}

// BuildPrompt renders the instructions, optional meeting context and the
// transcript into a single prompt.
func BuildPrompt(transcript string, opts ExtractOptions) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	if title := strings.TrimSpace(opts.Title); title != "" {
		fmt.Fprintf(&sb, "Meeting title: %s\n", title)
	}
	var speakers []string
	for _, s := range opts.Speakers {
		if s = strings.TrimSpace(s); s != "" {
			speakers = append(speakers, s)
		}
	}
	if len(speakers) > 0 {
		fmt.Fprintf(&sb, "Known participants: %s\nUse these names as assignees where the transcript makes the owner clear.\n", strings.Join(speakers, ", "))
	}
	sb.WriteString("Summarize this meeting transcript:\n\n")
	sb.WriteString(strings.TrimSpace(transcript))
	return sb.String()
}
