package evaluation

import (
	"fmt"

	"github.com/speaking-practice/backend/internal/llm"
)

const (
	ModeTopic      = "topic"
	ModeRepetition = "repetition"
)

// Criterion is one scored dimension of a rubric. Max is in rubric points.
type Criterion struct {
	Key      string
	Label    string
	Max      float64
	Guidance string
}

// Rubric is either TopicRubric or RepetitionRubric.
type Rubric interface {
	Mode() string
	Criteria() []Criterion
	Schema() *llm.Schema
	rubric()
}

// TopicRubric scores free speech on a topic: four criteria worth 25 each.
type TopicRubric struct{}

func (TopicRubric) Mode() string { return ModeTopic }

func (TopicRubric) Criteria() []Criterion {
	return []Criterion{
		{Key: "relevance", Label: "Relevance to the topic", Max: 25},
		{Key: "grammar", Label: "Grammar and sentence structure", Max: 25},
		{Key: "vocabulary", Label: "Vocabulary richness", Max: 25},
		{Key: "coherence", Label: "Coherence and organization", Max: 25},
	}
}

func (r TopicRubric) Schema() *llm.Schema { return rubricSchema(r) }

func (TopicRubric) rubric() {}

// RepetitionRubric scores reading or repeating a fixed sentence.
type RepetitionRubric struct{}

func (RepetitionRubric) Mode() string { return ModeRepetition }

func (RepetitionRubric) Criteria() []Criterion {
	return []Criterion{
		{Key: "accuracy", Label: "Accuracy", Max: 40, Guidance: "Did they say the correct words? Deduct only for missing or wrong words."},
		{Key: "pronunciation", Label: "Clarity/Pronunciation", Max: 30, Guidance: "Is the transcription close to the target?"},
		{Key: "fluency", Label: "Fluency/Pacing", Max: 30, Guidance: "Is the speech rate natural? Below 1.5 words/second is slow, above 4 is fast."},
	}
}

func (r RepetitionRubric) Schema() *llm.Schema { return rubricSchema(r) }

func (RepetitionRubric) rubric() {}

// RubricFor maps a mode string back to its rubric.
func RubricFor(mode string) (Rubric, error) {
	switch mode {
	case ModeTopic:
		return TopicRubric{}, nil
	case ModeRepetition:
		return RepetitionRubric{}, nil
	default:
		return nil, fmt.Errorf("unknown rubric mode %q", mode)
	}
}

func criterion(r Rubric, key string) (Criterion, bool) {
	for _, c := range r.Criteria() {
		if c.Key == key {
			return c, true
		}
	}
	return Criterion{}, false
}

func scoreField(key string) string {
	return key + "_score"
}

// rubricSchema describes the collaborator's answer. Nothing is required: a
// reply is usable as long as it carries a total or a component score, which
// ParseRubricReply checks. Missing totals are recomputed from components and a
// missing fluency score falls back to the local estimate.
func rubricSchema(r Rubric) *llm.Schema {
	props := map[string]any{
		"total_score":  map[string]any{"type": "number", "minimum": 0},
		"feedback":     map[string]any{"type": []any{"string", "null"}},
		"strengths":    map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
		"improvements": map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
	}
	for _, c := range r.Criteria() {
		props[scoreField(c.Key)] = map[string]any{
			"type":        "number",
			"minimum":     0,
			"description": fmt.Sprintf("%s (0-%g points)", c.Label, c.Max),
		}
	}
	return &llm.Schema{
		Name: "speaking-" + r.Mode(),
		Definition: map[string]any{
			"type":       "object",
			"properties": props,
		},
	}
}
