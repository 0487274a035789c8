package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
)

const (
	// FallbackHeading is the heading of a record synthesized without the model.
	FallbackHeading = "Summary unavailable"
	// excerptRunes bounds the transcript excerpt used in a fallback record.
	excerptRunes = 200
)

// ErrMalformedOutput means the model returned text that is not a JSON object.
var ErrMalformedOutput = errors.New("malformed model output")

// Parser turns raw model output into a normalized SummaryRecord.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the model output. The text is tried as is (after removing
// markdown fences), then the span between the first '{' and the last '}'.
func (p *Parser) Parse(raw string) (*entities.SummaryRecord, error) {
	content := extractJSON(raw)

	obj, err := decodeObject(content)
	if err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		if obj, err = decodeObject(content[start : end+1]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
	}
	return normalize(obj), nil
}

// ParseOrFallback is Parse with the fallback record substituted on failure.
// It never returns nil.
func (p *Parser) ParseOrFallback(raw, transcript string) *entities.SummaryRecord {
	rec, err := p.Parse(raw)
	if err != nil {
		return p.Fallback(transcript)
	}
	return rec
}

// Fallback builds the deterministic record used when the model output
// cannot be understood.
func (p *Parser) Fallback(transcript string) *entities.SummaryRecord {
	return &entities.SummaryRecord{
		SummaryHeading: FallbackHeading,
		KeyPoints:      []string{},
		Decisions:      []string{},
		ActionItems: []entities.ActionItem{
			entities.NewActionItem(entities.UnassignedAssignee, excerpt(transcript, excerptRunes), entities.NoDeadline),
		},
		Fallback: true,
	}
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	// Drop the opening fence line, which may carry a language tag.
	if idx := strings.Index(content, "\n"); idx != -1 {
		content = content[idx+1:]
	} else {
		content = strings.TrimPrefix(content, "```")
	}
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}

func decodeObject(s string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return obj, nil
}

func normalize(obj map[string]any) *entities.SummaryRecord {
	fields := make(map[string]any, len(obj))
	for k, v := range obj {
		fields[strings.ToLower(strings.TrimSpace(k))] = v
	}

	return &entities.SummaryRecord{
		SummaryHeading: strings.TrimSpace(coerceString(fields["summary_heading"])),
		KeyPoints:      stringList(fields["key_points"]),
		Decisions:      stringList(fields["decisions"]),
		ActionItems:    actionItems(fields["action_items"]),
	}
}

// coerceString renders any decoded JSON value as text. Objects and arrays
// are re-encoded as JSON.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// stringList accepts a list or a single scalar and drops blank entries.
func stringList(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return out
		}
		items = []any{v}
	}
	for _, it := range items {
		if s := strings.TrimSpace(coerceString(it)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func actionItems(v any) []entities.ActionItem {
	out := []entities.ActionItem{}
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return out
		}
		items = []any{v}
	}
	for _, it := range items {
		var assignee, task, deadline string
		switch t := it.(type) {
		case map[string]any:
			fields := make(map[string]any, len(t))
			for k, val := range t {
				fields[strings.ToLower(strings.TrimSpace(k))] = val
			}
			assignee = optional(fields["assignee"])
			task = strings.TrimSpace(coerceString(fields["task"]))
			deadline = optional(fields["deadline"])
		default:
			task = strings.TrimSpace(coerceString(t))
		}
		if task == "" {
			continue
		}
		out = append(out, entities.NewActionItem(assignee, task, deadline))
	}
	return out
}

// optional treats placeholder words the model uses for "nothing" as blank.
func optional(v any) string {
	s := strings.TrimSpace(coerceString(v))
	switch strings.ToLower(s) {
	case "null", "none", "n/a":
		return ""
	}
	return s
}
